package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zls/internal/config"
)

func TestLoadDefaultsAreEmptyWithoutOverlay(t *testing.T) {
	v, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Values{}, v)
}

func TestLoadOverlaysEnvironmentVariables(t *testing.T) {
	t.Setenv("ZLS_ZIG_EXE_PATH", "/usr/bin/zig")
	t.Setenv("ZLS_GLOBAL_CACHE_PATH", "/tmp/zig-global-cache")

	v, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/zig", v.ZigExePath)
	assert.Equal(t, "/tmp/zig-global-cache", v.GlobalCachePath)
	assert.Empty(t, v.BuildRunnerPath)
}

func TestLoadOverlaysJSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zls.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"zig_exe_path": "/opt/zig/zig", "builtin_path": "/opt/zig/lib/builtin.zig"}`), 0o644))

	v, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/zig/zig", v.ZigExePath)
	assert.Equal(t, "/opt/zig/lib/builtin.zig", v.BuiltinPath)
}

func TestLoadEnvironmentOverridesJSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zls.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"zig_exe_path": "/opt/zig/zig"}`), 0o644))
	t.Setenv("ZLS_ZIG_EXE_PATH", "/usr/local/bin/zig")

	v, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/zig", v.ZigExePath)
}

func TestLoadMissingFileIsSilent(t *testing.T) {
	v, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	assert.Equal(t, config.Values{}, v)
}
