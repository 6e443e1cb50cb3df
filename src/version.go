package satradio

import (
	"fmt"
	"runtime/debug"
	"strconv"
)

// Set at build time via `-ldflags "-X 'github.com/doismellburning/samoyed/src.SATRADIO_VERSION=X'"`
var SATRADIO_VERSION string

func getBuildSettingOrDefault(bi *debug.BuildInfo, key string, defaultValue string) string {
	for _, bs := range bi.Settings {
		if bs.Key == key {
			return bs.Value
		}
	}

	return defaultValue
}

// PrintVersion writes the version banner to stdout for `-v/--version`.
func PrintVersion(verbose bool) {
	var buildInfo, _ = debug.ReadBuildInfo()

	var buildTimeStr = getBuildSettingOrDefault(buildInfo, "vcs.time", "UNKNOWN")

	var (
		buildCommit               = getBuildSettingOrDefault(buildInfo, "vcs.revision", "UNKNOWN")
		buildDirtyStr             = getBuildSettingOrDefault(buildInfo, "vcs.modified", "INVALID")
		buildDirty, buildDirtyErr = strconv.ParseBool(buildDirtyStr)
	)

	if buildDirty {
		buildCommit += "-DIRTY"
	} else if buildDirtyErr != nil {
		buildCommit += "-UNKNOWNDIRTY"
	}

	var version = SATRADIO_VERSION
	if version == "" {
		version = "!UNKNOWN!"
	}

	fmt.Printf("satradio - Version %s (revision %s, built at %s)\n", version, buildCommit, buildTimeStr)

	if verbose {
		fmt.Printf("\nBuildInfo: %+v\n", buildInfo)
	}
}
