// Package version reports build metadata for the jsdocfmt binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = getRevision()
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
)

// String returns a one-line summary suitable for --version output.
func String() string {
	v := Version
	if v == "" {
		v = moduleVersion()
	}

	parts := []string{v, "revision " + Revision}
	if BuildDate != "" {
		parts = append(parts, "built "+BuildDate)
	}

	parts = append(parts, fmt.Sprintf("%s %s/%s", GoVersion, runtime.GOOS, runtime.GOARCH))

	return strings.Join(parts, ", ")
}

// moduleVersion falls back to the main module version recorded by
// go install, or "devel".
func moduleVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "devel"
	}

	return info.Main.Version
}

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
