// Package config handles application configuration and setup
package config

import (
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	return CreateLoggerWithWriter(os.Stderr, debug, quiet)
}

// CreateLoggerWithWriter creates a logger that writes to the given writer.
// The disassembly listing owns stdout, log output goes elsewhere.
func CreateLoggerWithWriter(w io.Writer, debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = w
	if debug {
		cfg.Level = log.DebugLevel
		cfg.CallerInfo = true
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
