package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestString(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	tests := []struct {
		commit, date string
		want         string
	}{
		{"", "", "rsnfmt 1.2.3"},
		{"abc123", "", "rsnfmt 1.2.3 (abc123)"},
		{"", "2024-01-15", "rsnfmt 1.2.3 (2024-01-15)"},
		{"abc123", "2024-01-15", "rsnfmt 1.2.3 (abc123, 2024-01-15)"},
	}
	Version = "1.2.3"
	for _, tt := range tests {
		GitCommit, BuildDate = tt.commit, tt.date
		if got := String(false); got != tt.want {
			t.Errorf("String(false) = %q, want %q", got, tt.want)
		}
	}
}

func TestColored(t *testing.T) {
	origVersion := Version
	defer func() { Version = origVersion }()

	Version = "1.2.3-rc.1"
	got := Colored()
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc.1") {
		t.Errorf("Colored() = %q", got)
	}

	Version = "nightly"
	if Colored() != "nightly" {
		t.Errorf("non-semver version must pass through, got %q", Colored())
	}
}
