package buildrunner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadZlsBuildJSONMissingIsEmpty(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadZlsBuildJSON(dir)
	require.NoError(t, err)
	assert.Equal(t, ZlsBuildJSON{}, cfg)
}

func TestLoadZlsBuildJSONParses(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"relative_builtin_path": "builtin.zig",
		"build_options": [
			{"arg": "target"},
			{"arg": "optimize", "value": "ReleaseFast"}
		]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zls.build.json"), []byte(content), 0o600))

	cfg, err := LoadZlsBuildJSON(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.RelativeBuiltinPath)
	assert.Equal(t, "builtin.zig", *cfg.RelativeBuiltinPath)
	require.Len(t, cfg.BuildOptions, 2)
	assert.Equal(t, []string{"--arg", "target"}, cfg.BuildOptions[0].Format())
	assert.Equal(t, []string{"--arg", "optimize=ReleaseFast"}, cfg.BuildOptions[1].Format())
}

func TestLoadZlsBuildJSONPropagatesParseError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zls.build.json"), []byte("{not json"), 0o600))
	_, err := LoadZlsBuildJSON(dir)
	assert.Error(t, err)
}
