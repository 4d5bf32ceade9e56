package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the cppdoc CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component in its own color.
// Color output follows color.NoColor.
func Colored() string {
	core, suffix, hasSuffix := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}

// Info returns the multi-line build description printed by `cppdoc version`.
func Info() string {
	var b strings.Builder
	b.WriteString("cppdoc " + Colored())
	if GitCommit != "" {
		b.WriteString("\ncommit: " + GitCommit)
	}
	if BuildDate != "" {
		b.WriteString("\nbuilt:  " + BuildDate)
	}
	return b.String()
}
