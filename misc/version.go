// Package misc holds build time program identification.
package misc

import "runtime/debug"

// Set with -ldflags "-X logicss/misc.version=... -X logicss/misc.gitHash=...".
var (
	appName = "logicss"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit hash the program was built from, taking it from
// embedded build information when not set at link time.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
