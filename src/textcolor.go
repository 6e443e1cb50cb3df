package satradio

import (
	"os"

	"github.com/charmbracelet/log"
)

// A reimplementation of Dire Wolf's textcolor.c, swapped for a real
// structured logger now that there's no terminal-escape budget to hand-roll:
// severities map onto log levels instead of ANSI colors.

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05",
})

// SetVerbose gates debug-level output on or off.
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}

func logInfo(msg string, kv ...any)  { logger.Info(msg, kv...) }
func logWarn(msg string, kv ...any)  { logger.Warn(msg, kv...) }
func logError(msg string, kv ...any) { logger.Error(msg, kv...) }
func logDebug(msg string, kv ...any) { logger.Debug(msg, kv...) }
