// Package version reports build metadata for startup logs, /api/health and
// the sitegen_build_info gauge.
package version

import (
	"fmt"
	"runtime/debug"
)

const Name = "sitegen"

// Set at link time with -ldflags "-X github.com/shineplatform/sitegen/internal/version.Version=...".
var (
	Version   = "0.4.0"
	BuildTime = ""
	GitCommit = ""
)

// Info is the build metadata exposed by the health endpoint.
type Info struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

var readBuildInfo = debug.ReadBuildInfo

// Get returns the link-time values, falling back to the VCS stamp the Go
// toolchain embeds when a binary is built from a checkout without ldflags.
func Get() Info {
	info := Info{Service: Name, Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}
	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// ShortCommit is the commit abbreviated to 7 characters.
func (i Info) ShortCommit() string {
	if len(i.GitCommit) > 7 {
		return i.GitCommit[:7]
	}
	return i.GitCommit
}

// Full is the version line logged at startup, e.g. "0.4.0 (a1b2c3d, 2026-01-01T00:00:00Z)".
func Full() string {
	info := Get()
	commit := info.ShortCommit()
	switch {
	case commit != "" && info.BuildTime != "":
		return fmt.Sprintf("%s (%s, %s)", info.Version, commit, info.BuildTime)
	case commit != "":
		return fmt.Sprintf("%s (%s)", info.Version, commit)
	}
	return info.Version
}
