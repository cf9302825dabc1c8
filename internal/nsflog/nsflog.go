// Package nsflog provides the package-level structured logger shared by
// the extraction pipeline. It wraps charmbracelet/log the way
// samoyed wraps its own diagnostic output: one configured logger,
// level controlled by environment, no call site constructs its own.
package nsflog

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the shared logger for the nsfnotate extraction pipeline.
var Logger = newLogger()

func newLogger() *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "nsfnotate",
	})
	l.SetLevel(levelFromEnv())
	return l
}

func levelFromEnv() log.Level {
	switch os.Getenv("NSFNOTATE_LOG_LEVEL") {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
