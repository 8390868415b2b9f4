// Package diag provides the interpreter's diagnostic logger and the
// audit trail for events that are deliberately invisible to callers,
// like security suppressions and swallowed provider errors.
package diag

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns the diagnostic logger components log through.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportTimestamp: false,
	})
}

// Discard returns a logger that drops everything, for callers that do
// not care about diagnostics.
func Discard() *log.Logger {
	logger := log.New(io.Discard)
	logger.SetLevel(log.FatalLevel)
	return logger
}
