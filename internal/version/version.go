// Package version reports build identity for the nesem binary: a
// version string set at link time via -ldflags, augmented with
// whatever VCS metadata the Go toolchain embedded automatically.
package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time via -ldflags; "dev" and "unknown" are the
// fallbacks for a plain `go build`.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	BuildUser = "unknown"
)

// BuildInfo is a snapshot of Version/GitCommit/BuildTime/BuildUser
// plus the Go toolchain details runtime and debug.BuildInfo expose
// directly.
type BuildInfo struct {
	Version    string
	GitCommit  string
	BuildTime  string
	BuildUser  string
	GoVersion  string
	Platform   string
	Arch       string
	CGOEnabled bool
}

// GetBuildInfo assembles a BuildInfo, preferring the link-time values
// above but falling back to the module's embedded VCS stamp
// (debug.ReadBuildInfo) for commit and build time when -ldflags never
// set them.
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		BuildUser: BuildUser,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "unknown" {
				info.BuildTime = s.Value
			}
		case "CGO_ENABLED":
			info.CGOEnabled = s.Value == "1"
		}
	}
	return info
}

// GetDetailedVersion formats a BuildInfo into the single line the
// -version flag prints: name, version, commit (shortened to 7 hex
// digits when long enough), build time, and toolchain/platform.
func GetDetailedVersion() string {
	info := GetBuildInfo()

	var b strings.Builder
	b.WriteString("nesem version ")
	b.WriteString(info.Version)

	if info.GitCommit != "unknown" {
		commit := info.GitCommit
		if len(commit) >= 7 {
			commit = commit[:7]
		}
		b.WriteString(" (commit ")
		b.WriteString(commit)
		b.WriteByte(')')
	}

	if info.BuildTime != "unknown" {
		b.WriteString(" built on ")
		if t, err := time.Parse(time.RFC3339, info.BuildTime); err == nil {
			b.WriteString(t.Format("2006-01-02 15:04:05"))
		} else {
			b.WriteString(info.BuildTime)
		}
	}

	b.WriteString(" with ")
	b.WriteString(info.GoVersion)
	b.WriteString(" for ")
	b.WriteString(info.Platform)
	b.WriteByte('/')
	b.WriteString(info.Arch)

	if info.BuildUser != "unknown" {
		b.WriteString(" by ")
		b.WriteString(info.BuildUser)
	}

	return b.String()
}
