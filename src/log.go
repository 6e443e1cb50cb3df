package satradio

// Telemetry logging: save per-block multiplex statistics to a CSV file.
//
// Adapted from Dire Wolf's log.go, which saved one CSV row per received
// APRS packet. There's no received packet here, so the row shape changes
// to one entry per mux loop block: active channel count, ADR encoder
// underruns, and summing saturation events. The daily-name strategy is
// kept, but file names are generated with a real strftime engine instead
// of a hand-rolled Go time.Format call, since the name pattern is
// user-configurable.

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/strftime"
)

// TelemetryLog writes one CSV row per mux loop block.
type TelemetryLog struct {
	dir      string
	pattern  string
	strf     *strftime.Strftime
	fp       *os.File
	openName string
}

// NewTelemetryLog prepares a telemetry log. pattern is a strftime-style
// name pattern (e.g. "satradio-%Y%m%d.csv") resolved against dir on each
// rollover. An empty dir disables telemetry logging entirely.
func NewTelemetryLog(dir string, pattern string) (*TelemetryLog, error) {
	if dir == "" {
		return &TelemetryLog{}, nil
	}

	if pattern == "" {
		pattern = "satradio-%Y%m%d.csv"
	}

	var stat, statErr = os.Stat(dir)
	switch {
	case statErr == nil && stat.IsDir():
		// Directory already exists, nothing to do.
	case statErr == nil:
		return nil, fmt.Errorf("telemetry log location %q is not a directory", dir)
	default:
		if mkdirErr := os.MkdirAll(dir, 0o755); mkdirErr != nil {
			return nil, fmt.Errorf("creating telemetry log directory %q: %w", dir, mkdirErr)
		}
	}

	var strf, strfErr = strftime.New(pattern)
	if strfErr != nil {
		return nil, fmt.Errorf("parsing telemetry log name pattern %q: %w", pattern, strfErr)
	}

	return &TelemetryLog{dir: dir, pattern: pattern, strf: strf}, nil
}

// WriteBlock appends one row describing a completed mux loop block.
func (l *TelemetryLog) WriteBlock(now time.Time, blockIndex int64, activeChannels int, underruns int, saturations int) error {
	if l == nil || l.dir == "" {
		return nil
	}

	var name = l.strf.FormatString(now)

	if l.fp != nil && name != l.openName {
		l.Close()
	}

	if l.fp == nil {
		var fullPath = filepath.Join(l.dir, name)

		var _, statErr = os.Stat(fullPath)
		var alreadyThere = statErr == nil

		var f, openErr = os.OpenFile(fullPath, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o644)
		if openErr != nil {
			return fmt.Errorf("opening telemetry log %q: %w", fullPath, openErr)
		}

		l.fp = f
		l.openName = name
		logInfo("opened telemetry log", "path", fullPath)

		if !alreadyThere {
			fmt.Fprintf(l.fp, "utime,isotime,block,active_channels,encoder_underruns,sum_saturations\n")
		}
	}

	var w = csv.NewWriter(l.fp)
	var writeErr = w.Write([]string{
		fmt.Sprintf("%d", now.Unix()),
		now.UTC().Format("2006-01-02T15:04:05Z"),
		fmt.Sprintf("%d", blockIndex),
		fmt.Sprintf("%d", activeChannels),
		fmt.Sprintf("%d", underruns),
		fmt.Sprintf("%d", saturations),
	})
	if writeErr != nil {
		return fmt.Errorf("writing telemetry row: %w", writeErr)
	}
	w.Flush()
	return w.Error()
}

// Close closes the currently open telemetry file, if any.
func (l *TelemetryLog) Close() {
	if l == nil || l.fp == nil {
		return
	}
	logInfo("closing telemetry log", "path", l.openName)
	l.fp.Close()
	l.fp = nil
	l.openName = ""
}
