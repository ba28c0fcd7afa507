// Package logging provides leveled logging backed by pterm prefixed printers.
package logging

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

// Init configures the default logger. The level comes from LOG_LEVEL;
// anything unset or unrecognized stays at info.
func Init() {
	pterm.DefaultLogger.ShowTime = true
	pterm.DefaultLogger.TimeFormat = "02 Jan 15:04:05"
	pterm.DefaultLogger.MaxWidth = 1000

	switch os.Getenv("LOG_LEVEL") {
	case "dev", "development", "debug":
		pterm.DefaultLogger.Level = pterm.LogLevelDebug
	case "warn", "warning":
		pterm.DefaultLogger.Level = pterm.LogLevelWarn
	case "error", "production", "prod":
		pterm.DefaultLogger.Level = pterm.LogLevelError
	}
}

// All output goes to stderr by default (pterm's default).

func Debugf(format string, args ...interface{}) {
	pterm.DefaultLogger.Debug(fmt.Sprintf(format, args...))
}

func Infof(format string, args ...interface{}) {
	pterm.DefaultLogger.Info(fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...interface{}) {
	pterm.DefaultLogger.Warn(fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...interface{}) {
	pterm.DefaultLogger.Error(fmt.Sprintf(format, args...))
}
