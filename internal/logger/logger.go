// Package logger builds prefixed charmbracelet/log loggers.
// Everything logs to stderr; stdout belongs to the IPC stream.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Output is where New and NewWithConfig write.
var Output io.Writer = os.Stderr

// New creates a charm log with prefix at the global log level.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(Output, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Session creates the logger of one editing session, prefixed with the
// first block of its id.
func Session(id string) *log.Logger {
	if len(id) > 8 {
		id = id[:8]
	}
	return New("session " + id)
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(Output, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// SetDebug switches the global level between debug and warn.
func SetDebug(debug bool) {
	if debug {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(log.WarnLevel)
}
