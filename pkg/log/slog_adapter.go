package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes validation events to an slog.Logger.
// Useful for development when you want to see every verdict in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Supported lines and run
// summaries go out at Debug level, problems at Warn level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("run_id", event.RunID),
		slog.String("kind", event.Kind.String()),
	}

	if event.Source != "" {
		attrs = append(attrs, slog.String("source", event.Source))
	}
	if event.Line > 0 {
		attrs = append(attrs, slog.Int("line", event.Line))
	}
	if event.Command != "" {
		attrs = append(attrs, slog.String("command", event.Command))
	}
	if event.Message != "" {
		attrs = append(attrs, slog.String("detail", event.Message))
	}
	if event.Summary != nil {
		attrs = append(attrs,
			slog.Int("lines", event.Summary.Lines),
			slog.Int("commands", event.Summary.Commands),
			slog.Int("errors", event.Summary.Errors),
		)
	}

	level := slog.LevelDebug
	if event.Kind.IsProblem() {
		level = slog.LevelWarn
	}

	a.logger.LogAttrs(context.Background(), level, "gcode", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
