package commands

import (
	"bytes"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreStamp(t *testing.T) {
	t.Helper()
	orig := stamp
	t.Cleanup(func() { stamp = orig })
}

func TestVersion(t *testing.T) {
	restoreStamp(t)
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")

	var out bytes.Buffer
	cmd := Version()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "lexdeploy 1.2.3\n")
	assert.Contains(t, out.String(), "commit:   abc123")
	assert.Contains(t, out.String(), "built:    2026-01-01")
	assert.Contains(t, out.String(), "platform: "+runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersion_Short(t *testing.T) {
	restoreStamp(t)
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")

	var out bytes.Buffer
	cmd := Version()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--short"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "1.2.3\n", out.String())
}

func TestVersion_RejectsArgs(t *testing.T) {
	cmd := Version()
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}

func TestBuildStamp_WithModuleInfo(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "f00dcafe"},
			{Key: "vcs.time", Value: "2026-05-01T10:00:00Z"},
		},
	}
	read := func() (*debug.BuildInfo, bool) { return info, true }

	tests := []struct {
		name  string
		stamp buildStamp
		want  buildStamp
	}{
		{
			name:  "dev build",
			stamp: buildStamp{Version: "dev", Commit: "none", Date: "unknown"},
			want:  buildStamp{Version: "v0.4.0", Commit: "f00dcafe", Date: "2026-05-01T10:00:00Z"},
		},
		{
			name:  "release build keeps its stamp",
			stamp: buildStamp{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"},
			want:  buildStamp{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stamp.withModuleInfo(read))
		})
	}

	devel := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}
	got := buildStamp{Version: "dev", Commit: "none", Date: "unknown"}.withModuleInfo(func() (*debug.BuildInfo, bool) { return devel, true })
	assert.Equal(t, "dev", got.Version)

	missing := buildStamp{Version: "dev"}.withModuleInfo(func() (*debug.BuildInfo, bool) { return nil, false })
	assert.Equal(t, "dev", missing.Version)
}
