// Package version reports build metadata for namify.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set via ldflags.
var (
	Version   string
	BuildDate string
)

// GetVersion returns the release version, or the VCS revision for
// development builds.
func GetVersion() string {
	if Version != "" {
		return strings.TrimPrefix(Version, "v")
	}

	return revision()
}

// String returns a one-line summary used by `namify --version`.
func String() string {
	var b strings.Builder

	b.WriteString(GetVersion())

	if BuildDate != "" {
		fmt.Fprintf(&b, " (built %s)", BuildDate)
	}

	fmt.Fprintf(&b, " %s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	return b.String()
}

func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}

	var rev, dirty string

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value[:min(7, len(s.Value))]
		case "vcs.modified":
			if s.Value == "true" {
				dirty = "-dirty"
			}
		}
	}

	if rev == "" {
		return "devel"
	}

	return rev + dirty
}
