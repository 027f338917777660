package version

import (
	"strings"
	"testing"
)

func TestColoredPlain(t *testing.T) {
	if got := Colored(false); got != Version {
		t.Errorf("Colored(false) = %q, want %q", got, Version)
	}
}

func TestColoredKeepsSuffix(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3-rc1"
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc1") {
		t.Errorf("Colored(true) = %q", got)
	}

	Version = "nightly"
	if got := Colored(true); got != "nightly" {
		t.Errorf("non-semver must pass through, got %q", got)
	}
}

func TestInfoOverrides(t *testing.T) {
	origCommit, origDate, origMsg := GitCommit, BuildDate, GitMessage
	defer func() { GitCommit, BuildDate, GitMessage = origCommit, origDate, origMsg }()

	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"
	GitMessage = "fix closures"

	info := Info(false)
	for _, want := range []string{"lox " + Version, "commit: abc123def456", "message: fix closures", "built: 2024-01-15T10:30:00Z", "go: go"} {
		if !strings.Contains(info, want) {
			t.Errorf("Info misses %q:\n%s", want, info)
		}
	}
}
