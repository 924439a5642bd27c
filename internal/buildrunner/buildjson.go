package buildrunner

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// BuildOption is one runner command-line option record from
// zls.build.json's "build_options" array (spec.md §6, shape fixed by
// SPEC_FULL.md's supplemented feature #5).
type BuildOption struct {
	Arg   string  `json:"arg"`
	Value *string `json:"value,omitempty"`
}

// Format renders one option the way spec.md §4.4.3's command template
// expects: "--arg <arg>" or "--arg <arg>=<value>".
func (o BuildOption) Format() []string {
	if o.Value == nil {
		return []string{"--arg", o.Arg}
	}
	return []string{"--arg", o.Arg + "=" + *o.Value}
}

// ZlsBuildJSON is the optional per-build-script config file spec.md §4.4.2
// and §6 describe.
type ZlsBuildJSON struct {
	RelativeBuiltinPath *string       `json:"relative_builtin_path,omitempty"`
	BuildOptions        []BuildOption `json:"build_options,omitempty"`
}

// LoadZlsBuildJSON reads "<scriptDir>/zls.build.json". A missing file is
// not an error — it is equivalent to an empty object, per spec.md §4.4.2
// and §7. Any other read or parse error propagates.
func LoadZlsBuildJSON(scriptDir string) (ZlsBuildJSON, error) {
	path := filepath.Join(scriptDir, "zls.build.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ZlsBuildJSON{}, nil
		}
		return ZlsBuildJSON{}, err
	}
	var cfg ZlsBuildJSON
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ZlsBuildJSON{}, err
	}
	return cfg, nil
}
