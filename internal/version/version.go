package version

import (
	"runtime/debug"
)

// Version is the current semantic version of objstore
const Version = "0.1.0"

// Set during build time with -ldflags "-X ..."
var (
	BuildDate = "development"
	GitCommit = "unknown"
)

// Info returns version information as a string
func Info() string {
	return Version
}

// FullInfo returns detailed version information
func FullInfo() string {
	return "objstore " + Version + " (commit: " + commit() + ", built: " + BuildDate + ")"
}

// commit falls back to the VCS revision stamped by the go tool when no
// commit was set at link time
func commit() string {
	if GitCommit != "unknown" {
		return GitCommit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return GitCommit
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 12 {
			return s.Value[:12]
		}
	}
	return GitCommit
}
