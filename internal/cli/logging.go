package cli

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// newLogger returns a text logger on w tagged with a fresh run ID.
func newLogger(w io.Writer, verbose bool) (*slog.Logger, string) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	runID := uuid.NewString()
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run_id", runID), runID
}
