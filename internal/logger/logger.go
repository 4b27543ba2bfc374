// Package logger holds the process-wide diagnostic logger.
//
// User-facing output goes through the console sink in internal/ui; this logger
// only carries debug and error diagnostics.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var current *zerolog.Logger

// Init configures the logger.
// level: "debug", "info", "warn" or "error"; anything else means info.
// file: optional log file path; when empty only stderr is used.
func Init(level string, file string) error {
	logLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}

	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}

	if file != "" {
		fileWriter, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		output = zerolog.MultiLevelWriter(output, fileWriter)
	}

	l := zerolog.New(output).With().Timestamp().Logger().Level(logLevel)
	current = &l
	return nil
}

// Get returns the configured logger, or a logger that discards everything if
// Init was never called.
func Get() *zerolog.Logger {
	if current == nil {
		l := zerolog.New(io.Discard)
		current = &l
	}
	return current
}
