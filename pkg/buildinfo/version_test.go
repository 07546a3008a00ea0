package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func reset(t *testing.T, v, c, d string) {
	t.Helper()
	oldV, oldC, oldD := Version, Commit, Date
	Version, Commit, Date = v, c, d
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
}

func TestFill(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2025-01-02T03:04:05Z"},
		},
	}

	t.Run("unset", func(t *testing.T) {
		reset(t, "dev", "none", "unknown")
		fill(info)
		if Version != "v1.2.3" || Commit != "abc123" || Date != "2025-01-02T03:04:05Z" {
			t.Errorf("got %s %s %s", Version, Commit, Date)
		}
	})

	t.Run("ldflags win", func(t *testing.T) {
		reset(t, "v9.9.9", "fff", "today")
		fill(info)
		if Version != "v9.9.9" || Commit != "fff" || Date != "today" {
			t.Errorf("got %s %s %s", Version, Commit, Date)
		}
	})

	t.Run("devel build", func(t *testing.T) {
		reset(t, "dev", "none", "unknown")
		fill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
		if Version != "dev" {
			t.Errorf("Version = %s, want dev", Version)
		}
	})
}

func TestTemplate(t *testing.T) {
	reset(t, "v1.0.0", "abc", "2025-01-01")
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version v1.0.0\n") || !strings.Contains(got, "commit: abc") {
		t.Errorf("Template() = %q", got)
	}
	if String() != "version: v1.0.0\ncommit: abc\nbuilt: 2025-01-01" {
		t.Errorf("String() = %q", String())
	}
}
