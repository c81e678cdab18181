// Package cliutil holds small helpers shared by eslex's CLI commands:
// logger construction and the process exit-code vocabulary.
package cliutil

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Exit codes mirror the teacher devcmd CLI's constant block, renamed
// to this domain.
const (
	ExitSuccess          = 0
	ExitInvalidArguments = 1
	ExitIOError          = 2
	ExitScanError        = 3
	ExitPluginError      = 4
)

// NewLogger returns a logrus.FieldLogger writing to stderr, at debug
// level when debug is set and info level otherwise.
func NewLogger(debug bool) logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
