// Package cmd holds build metadata for themesnap.
package cmd

import (
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/thoreinstein/themesnap/cmd.Version=v1.2.0".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// GitHub repository queried by `themesnap version --check`.
const (
	RepoOwner = "thoreinstein"
	RepoName  = "themesnap"
)

// Build describes the running binary.
type Build struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

var readBuildInfo = debug.ReadBuildInfo

// Current returns the build metadata. Values not set through ldflags are
// taken from the module and VCS information recorded by the go tool, so
// `go install` builds still report a version.
func Current() Build {
	b := Build{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}

	info, ok := readBuildInfo()
	if !ok {
		return b
	}
	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "none" {
				b.Commit = s.Value
			}
		case "vcs.time":
			if b.Date == "unknown" {
				b.Date = s.Value
			}
		}
	}
	return b
}
