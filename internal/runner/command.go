package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Command is one invocation of the call-graph tool.
type Command struct {
	Bin      string
	ScanRoot string
	Language string
	// Start is the selector: a bare name or an anchored file:function pattern.
	Start      string
	Output     string
	SubsetPath string
	FullPath   bool
	Show       bool
	// Env is the subprocess environment; nil inherits the current one.
	Env []string
}

// Result captures a finished invocation.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// Succeeded reports a zero exit status.
func (r *Result) Succeeded() bool {
	return r.ExitCode == 0
}

// Args returns the tool's argv without the binary.
func (c Command) Args() []string {
	args := []string{
		c.ScanRoot,
		"-language", c.Language,
		"-start", c.Start,
		"-output", c.Output,
	}
	if c.FullPath {
		args = append(args, "-fullPath")
	}
	if !c.Show {
		args = append(args, "-noShow")
	}
	if c.SubsetPath != "" {
		args = append(args, "-subset", c.SubsetPath)
	}
	return args
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Bin}, c.Args()...), " ")
}

// Run executes the tool and waits for it. A non-zero exit is reported in the
// result, not as an error; errors mean the tool could not be run at all.
func (c Command) Run(ctx context.Context) (*Result, error) {
	if c.Bin == "" {
		return nil, errors.New("no call-graph tool configured")
	}
	if dir := filepath.Dir(c.Output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, c.Bin, c.Args()...)
	if c.Env != nil {
		cmd.Env = c.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	default:
		return nil, fmt.Errorf("failed to run %s: %w", c.Bin, err)
	}
}

// GraphPath returns where the tool leaves its graph description for output:
// output itself when it is a .dot file, else the sibling <stem>.dot.
func GraphPath(output string) string {
	ext := filepath.Ext(output)
	if strings.EqualFold(ext, ".dot") {
		return output
	}
	return strings.TrimSuffix(output, ext) + ".dot"
}
