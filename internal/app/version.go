package app

import (
	"fmt"
	"runtime/debug"
)

// Set via ldflags, e.g.
// go build -ldflags "-X github.com/rsimmons/yukawa/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion formats the version for startup logs and /health. When the
// commit or time were not injected it falls back to the VCS stamp the Go
// toolchain embeds.
func BuildVersion() string {
	return buildVersion(Version, Commit, BuildTime, debug.ReadBuildInfo)
}

func buildVersion(version, commit, built string, read func() (*debug.BuildInfo, bool)) string {
	if commit == "" || built == "" {
		if info, ok := read(); ok {
			for _, s := range info.Settings {
				switch {
				case s.Key == "vcs.revision" && commit == "":
					commit = s.Value
				case s.Key == "vcs.time" && built == "":
					built = s.Value
				}
			}
		}
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if commit == "" {
		commit = "unknown"
	}
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, built)
}
