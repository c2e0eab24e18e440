// Package version reports what build is running
//
// Values come from -ldflags, for example
//
//	-X marquee/internal/core/version.version=v0.1.0 -X marquee/internal/core/version.commit=abc1234
//
// and otherwise from the VCS stamp the go tool embeds
package version

import (
	"runtime/debug"
	"sync"
)

// Service is the name the API reports for itself
const Service = "marquee-api"

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

var info = sync.OnceValue(func() BuildInfo {
	bi := BuildInfo{Service: Service, Version: version, Commit: commit, Date: date}
	if b, ok := debug.ReadBuildInfo(); ok {
		bi.GoVersion = b.GoVersion
		for _, s := range b.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "":
				bi.Date = s.Value
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
})

// Info returns the build information
func Info() BuildInfo { return info() }
