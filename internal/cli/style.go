package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var colorWarning = lipgloss.Color("#F4D03F")

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// warningPrinter writes user-facing warnings, styled on a terminal and plain
// otherwise.
type warningPrinter struct {
	w       io.Writer
	styled  bool
	label   lipgloss.Style
	message lipgloss.Style
}

func newWarningPrinter(w io.Writer) *warningPrinter {
	renderer := lipgloss.NewRenderer(w)
	return &warningPrinter{
		w:       w,
		styled:  isTerminal(w),
		label:   renderer.NewStyle().Bold(true).Foreground(colorWarning),
		message: renderer.NewStyle().Foreground(colorWarning),
	}
}

func (p *warningPrinter) Warn(msg string) {
	if !p.styled {
		fmt.Fprintf(p.w, "WARNING: %s\n", msg)
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", p.label.Render("WARNING:"), p.message.Render(msg))
}

