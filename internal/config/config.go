// Package config loads the values spec.md §6 lists as "Environment /
// configuration values consumed": the compiler and build-runner paths the
// store needs before it can open a single document. Grounded on the
// teacher's internal/config (default-struct-then-overlay Load), upgraded
// to koanf's stacked-provider model per SPEC_FULL.md's Configuration
// section: compiled-in defaults, then an optional zls.json file, then
// ZLS_-prefixed environment variables.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Values is the fully-resolved configuration surface, matching
// store.Config's fields.
type Values struct {
	ZigExePath      string `koanf:"zig_exe_path"`
	ZigLibPath      string `koanf:"zig_lib_path"`
	BuildRunnerPath string `koanf:"build_runner_path"`
	GlobalCachePath string `koanf:"global_cache_path"`
	BuiltinPath     string `koanf:"builtin_path"`
}

// envPrefix is the variable prefix the env provider overlays, e.g.
// ZLS_ZIG_EXE_PATH for zig_exe_path.
const envPrefix = "ZLS_"

// Load resolves Values from, in overlay order: compiled-in defaults
// (all empty — spec.md names no default paths, since every one is
// environment-specific), an optional JSON file at path (file-not-found is
// silent, matching spec.md §7's "absent file is equivalent to empty
// object" policy for the adjacent zls.build.json), and ZLS_-prefixed
// environment variables. godotenv optionally seeds the process
// environment from a .env file first, for local development only; an
// absent .env is likewise silent.
func Load(path string) (Values, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(Values{}, "koanf"), nil); err != nil {
		return Values{}, err
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), json.Parser()); err != nil {
				return Values{}, err
			}
		}
	}

	envProvider := env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			return key, value
		},
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Values{}, err
	}

	var v Values
	if err := k.Unmarshal("", &v); err != nil {
		return Values{}, err
	}
	return v, nil
}
