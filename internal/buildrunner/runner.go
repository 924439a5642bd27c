package buildrunner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"zls/internal/procutil"
)

// Package is one package record the runner reports, resolved to an
// absolute path already (spec.md §4.4.3: "Each package path is resolved
// relative to the script directory").
type Package struct {
	Name string
	Path string // absolute filesystem path
}

// Config describes one build-script invocation's inputs, per spec.md
// §4.4.3's literal command template.
type Config struct {
	ZigExePath      string
	BuildRunnerPath string
	GlobalCachePath string
	BuildFilePath   string
	ScriptDir       string
	LocalCacheRoot  string // baked-in "zig-cache"
	GlobalCacheRoot string // baked-in "ZLS_DONT_CARE"
	BuildOptions    []BuildOption
}

// RunResult is the runner's parsed standard output.
type RunResult struct {
	Packages    []Package
	IncludeDirs []string
}

// runnerOutput mirrors the wire JSON shape spec.md §6 fixes:
// {"packages": [{"name", "path"}], "include_dirs": [...]}.
type runnerOutput struct {
	Packages []struct {
		Name string `json:"name"`
		Path string `json:"path"`
	} `json:"packages"`
	IncludeDirs []string `json:"include_dirs"`
}

// ErrRunFailed wraps a nonzero exit or I/O failure from the runner
// subprocess, per spec.md §4.4.3 / §7: logged and swallowed by the
// caller, never propagated as a store-level error.
type ErrRunFailed struct {
	Err    error
	Stderr string
}

func (e *ErrRunFailed) Error() string { return fmt.Sprintf("buildrunner: run failed: %v", e.Err) }
func (e *ErrRunFailed) Unwrap() error { return e.Err }

// buildArgs renders cfg into the exact argv spec.md §4.4.3's command
// template specifies, options last in declaration order.
func buildArgs(cfg Config) []string {
	args := []string{
		"run", cfg.BuildRunnerPath,
		"--cache-dir", cfg.GlobalCachePath,
		"--pkg-begin", "@build@", cfg.BuildFilePath, "--pkg-end",
		"--",
		cfg.ZigExePath, cfg.ScriptDir, cfg.LocalCacheRoot, cfg.GlobalCacheRoot,
	}
	for _, opt := range cfg.BuildOptions {
		args = append(args, opt.Format()...)
	}
	return args
}

// parseRunnerOutput translates the runner's JSON stdout into a RunResult,
// resolving relative package paths against scriptDir per spec.md §4.4.3.
func parseRunnerOutput(data []byte, scriptDir string) (RunResult, error) {
	var out runnerOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return RunResult{}, err
	}
	result := RunResult{IncludeDirs: out.IncludeDirs}
	for _, p := range out.Packages {
		abs := p.Path
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(scriptDir, p.Path)
		}
		result.Packages = append(result.Packages, Package{Name: p.Name, Path: abs})
	}
	return result, nil
}

// Run spawns the build-script runner subprocess with the exact argument
// order spec.md §4.4.3 specifies and parses its JSON stdout.
func Run(cfg Config) (RunResult, error) {
	cmd := exec.CommandContext(context.Background(), cfg.ZigExePath, buildArgs(cfg)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logrus.WithFields(logrus.Fields{
			"op":         "build-runner",
			"build_file": cfg.BuildFilePath,
			"stderr":     procutil.Tail(stderr.String(), 4096),
		}).Warn("build-script runner failed")
		return RunResult{}, &ErrRunFailed{Err: err, Stderr: stderr.String()}
	}

	result, err := parseRunnerOutput(stdout.Bytes(), cfg.ScriptDir)
	if err != nil {
		return RunResult{}, &ErrRunFailed{Err: err}
	}
	return result, nil
}
