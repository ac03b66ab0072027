package cli

import (
	"fmt"
	"io"
	"strings"
	"time"
)

type progressReporter struct {
	w       io.Writer
	enabled bool
	label   string
	start   time.Time
	spinner int
	lastLen int
}

// newProgressReporter reports on w only when w is a terminal and the run is
// not producing JSON.
func newProgressReporter(w io.Writer, label string, asJSON bool) *progressReporter {
	return &progressReporter{
		w:       w,
		enabled: isTerminal(w) && !asJSON,
		label:   label,
		start:   time.Now(),
	}
}

// Update matches normalize.ProgressFunc.
func (r *progressReporter) Update(file string, count int) {
	if !r.enabled {
		return
	}
	frames := [4]string{"-", "\\", "|", "/"}
	frame := frames[r.spinner%len(frames)]
	r.spinner++
	file = strings.TrimSpace(file)
	if len(file) > 88 {
		file = "..." + file[len(file)-85:]
	}
	r.printStatus(fmt.Sprintf("%s %s %d %s", frame, r.label, count, file))
}

func (r *progressReporter) Done(count int) {
	if !r.enabled {
		return
	}
	elapsed := time.Since(r.start).Round(time.Millisecond)
	r.printStatus(fmt.Sprintf("%s complete (%d files in %s)", r.label, count, elapsed))
	fmt.Fprintln(r.w)
}

func (r *progressReporter) printStatus(status string) {
	if r.lastLen > len(status) {
		status = status + strings.Repeat(" ", r.lastLen-len(status))
	}
	r.lastLen = len(status)
	fmt.Fprintf(r.w, "\r%s", status)
}
