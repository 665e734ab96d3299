package version

import (
	"runtime/debug"
	"sync"
)

// Version is overridden at link time for release builds.
var Version = "dev"

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"buildTime,omitempty"`
	GoVersion string `json:"goVersion,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// IsRelease reports whether the build carries a linked release version.
func (i Info) IsRelease() bool { return i.Version != "dev" && !i.Dirty }

// Short returns the version followed by the abbreviated commit, if known.
func (i Info) Short() string {
	s := i.Version
	if i.Commit != "" {
		s += "-" + i.Commit
	}
	if i.Dirty {
		s += "-dirty"
	}
	return s
}

var (
	buildOnce sync.Once
	build     Info
)

// Get returns the build information. The VCS stamp is read once.
func Get() Info {
	buildOnce.Do(func() {
		build = fromBuildInfo(debug.ReadBuildInfo())
	})
	info := build
	info.Version = Version
	return info
}

// Short is shorthand for Get().Short().
func Short() string { return Get().Short() }

// UserAgent is the User-Agent header value sent to the backend.
func UserAgent() string { return "tatva/" + Short() }

func fromBuildInfo(bi *debug.BuildInfo, ok bool) Info {
	var info Info
	if !ok || bi == nil {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
			if len(info.Commit) > 7 {
				info.Commit = info.Commit[:7]
			}
		case "vcs.time":
			info.BuildTime = s.Value
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}
