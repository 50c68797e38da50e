package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the rsnfmt CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored renders Version with its major, minor and patch parts highlighted, regardless of
// whether the terminal was detected as color-capable. Anything that is not
// MAJOR.MINOR.PATCH[-suffix] is returned unchanged.
func Colored() string {
	core, suffix, hasSuffix := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version
	}
	major := color.New(color.FgYellow, color.Bold)
	minor := color.New(color.FgGreen, color.Bold)
	patch := color.New(color.FgBlue, color.Bold)
	for _, c := range []*color.Color{major, minor, patch} {
		c.EnableColor()
	}
	out := major.Sprint(parts[0]) + "." + minor.Sprint(parts[1]) + "." + patch.Sprint(parts[2])
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}

// String is the full one-line description printed by `rsnfmt version`.
func String(colored bool) string {
	v := Version
	if colored {
		v = Colored()
	}
	s := "rsnfmt " + v
	switch {
	case GitCommit != "" && BuildDate != "":
		s += fmt.Sprintf(" (%s, %s)", GitCommit, BuildDate)
	case GitCommit != "":
		s += fmt.Sprintf(" (%s)", GitCommit)
	case BuildDate != "":
		s += fmt.Sprintf(" (%s)", BuildDate)
	}
	return s
}
