package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/uistate/internal/version.Version=v1.2.3 \
//	                   -X github.com/muurk/uistate/internal/version.Commit=abc123"
//
// Anything left unset is filled from the VCS stamp in the build info, or
// falls back to "dev" and "unknown".
var (
	// Version is the semantic version of the application
	Version = ""
	// Commit is the git commit hash
	Commit = ""
	// Date is the commit or build date, YYYY-MM-DD
	Date = ""
)

// Info is the build description printed by the version command.
type Info struct {
	Version   string `yaml:"version"`
	Commit    string `yaml:"commit"`
	Date      string `yaml:"date,omitempty"`
	GoVersion string `yaml:"go"`
	Platform  string `yaml:"platform"`
}

func init() {
	if Version == "" || Commit == "" || Date == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			fillFromSettings(info.Settings)
		}
	}

	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fillFromSettings reads the vcs.* keys stamped by the go command.
func fillFromSettings(settings []debug.BuildSetting) {
	var revision, modified, vcsTime string
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		case "vcs.time":
			vcsTime = s.Value
		}
	}

	if Commit == "" && revision != "" {
		Commit = revision
		if len(Commit) > 7 {
			Commit = Commit[:7]
		}
		if modified == "true" {
			Commit += "-dirty"
		}
	}

	if vcsTime != "" {
		if t, err := time.Parse(time.RFC3339, vcsTime); err == nil {
			if Date == "" {
				Date = t.UTC().Format(time.DateOnly)
			}
			if Version == "" {
				Version = "dev-" + t.UTC().Format("20060102")
			}
		}
	}
}

// Get returns the build description.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
