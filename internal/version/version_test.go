package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColoredPlain(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	if got := Colored(); got != Version {
		t.Errorf("Colored() = %q, want %q", got, Version)
	}
}

func TestInfo_Overridden(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		color.NoColor = old
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	want := "cppdoc 1.2.3\ncommit: abc123def456\nbuilt:  2024-01-15T10:30:00Z"
	if got := Info(); got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestColoredMalformed(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "nightly"
	if got := Colored(); got != "nightly" {
		t.Errorf("Colored() = %q", got)
	}
}
