package buildrunner

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgsOrder(t *testing.T) {
	g := goldie.New(t)
	cfg := Config{
		ZigExePath:      "/usr/bin/zig",
		BuildRunnerPath: "/runner/build_runner.zig",
		GlobalCachePath: "/cache/global",
		BuildFilePath:   "/proj/build.zig",
		ScriptDir:       "/proj",
		LocalCacheRoot:  "zig-cache",
		GlobalCacheRoot: "ZLS_DONT_CARE",
		BuildOptions: []BuildOption{
			{Arg: "target"},
			{Arg: "optimize", Value: strPtr("ReleaseFast")},
		},
	}
	g.Assert(t, "build_args", []byte(strings.Join(buildArgs(cfg), "\n")))
}

func TestParseRunnerOutputResolvesRelativePaths(t *testing.T) {
	data := []byte(`{
		"packages": [
			{"name": "root", "path": "build.zig"},
			{"name": "sub", "path": "/abs/sub/build.zig"}
		],
		"include_dirs": ["/usr/include"]
	}`)

	result, err := parseRunnerOutput(data, "/proj")
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/include"}, result.IncludeDirs)
	require.Len(t, result.Packages, 2)
	assert.Equal(t, Package{Name: "root", Path: "/proj/build.zig"}, result.Packages[0])
	assert.Equal(t, Package{Name: "sub", Path: "/abs/sub/build.zig"}, result.Packages[1])
}

func TestParseRunnerOutputPropagatesParseError(t *testing.T) {
	_, err := parseRunnerOutput([]byte("not json"), "/proj")
	assert.Error(t, err)
}

func TestErrRunFailedUnwraps(t *testing.T) {
	inner := assert.AnError
	err := &ErrRunFailed{Err: inner, Stderr: "boom"}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "run failed")
}

func strPtr(s string) *string { return &s }
