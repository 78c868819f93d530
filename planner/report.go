package planner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// LogReporter adapts a slog.Logger to the Reporter sink. Planner
// diagnostics are usage errors on the caller's side, so they are emitted
// at the configured level with the formatted message as the log line.
type LogReporter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogReporter wraps logger as a Reporter emitting at level. A nil
// logger uses slog.Default().
func NewLogReporter(logger *slog.Logger, level slog.Level) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger, level: level}
}

// Report formats the message and logs it.
func (r *LogReporter) Report(format string, args ...any) {
	r.logger.Log(context.Background(), r.level, fmt.Sprintf(format, args...))
}

// WriterReporter writes each reported message as one line to an io.Writer.
// Useful for tests and for the CLI, where diagnostics go to stderr.
type WriterReporter struct {
	w io.Writer
}

// NewWriterReporter returns a Reporter that writes to w.
func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{w: w}
}

// Report formats the message and writes it followed by a newline.
func (r *WriterReporter) Report(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Discard is a Reporter that drops all messages.
var Discard Reporter = discardReporter{}

type discardReporter struct{}

func (discardReporter) Report(string, ...any) {}
