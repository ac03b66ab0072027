package cli

import (
	"errors"
	"fmt"
	"io"
)

// Exit codes.
const (
	ExitCodeOK      = 0
	ExitCodeFailure = 1
	ExitCodeUsage   = 2
)

// ExitError carries a process exit code to main. A nil Err means the message
// has already been shown, as when the tool's own output is passed through.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: ExitCodeUsage, Err: fmt.Errorf(format, args...)}
}

// Report prints err to w when it has something to say and returns the exit
// code for it.
func Report(w io.Writer, err error) int {
	if err == nil {
		return ExitCodeOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(w, "ERROR: %v\n", exitErr.Err)
		}
		if exitErr.Code <= 0 {
			return ExitCodeFailure
		}
		return exitErr.Code
	}
	fmt.Fprintf(w, "ERROR: %v\n", err)
	return ExitCodeFailure
}
