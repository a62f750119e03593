// Package log configures the process-wide slog logger. The TUI occupies
// the terminal, so handlers never write to stdout: they target a log
// file or discard output entirely.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs the default logger. When path is empty the logger is
// kept but its output discarded, so call sites never need nil checks.
// The returned closer is non-nil only when a file was opened.
func Setup(path string, level slog.Level) (io.Closer, error) {
	var w io.Writer = io.Discard
	var closer io.Closer

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		w = f
		closer = f
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return closer, nil
}

// WithComponent returns a logger tagged with a component name.
func WithComponent(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
