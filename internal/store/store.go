// Package store implements the document store: the URI-keyed registry of
// open documents and build-file descriptors, the open/refresh/close
// lifecycle, build-file discovery, import resolution, and the C-import
// translation cache. It is the component the rest of the language server
// is built around; everything else (transport, parsing, translation) is
// wired in through the collaborator interfaces in internal/syntax and
// internal/ctranslate.
//
// Grounded on the teacher's internal/manager (URI-keyed map + mutex
// lifecycle), internal/resolver (multi-namespace resolution generalized
// from Typst references to std/builtin/package/relative imports), and
// internal/cache/hybrid_cache.go (map-backed registry with explicit
// create/decrement bookkeeping and informational logging throughout).
package store

import (
	"os"

	"github.com/sirupsen/logrus"

	"zls/internal/buildrunner"
	"zls/internal/ctranslate"
	"zls/internal/syntax"
)

// localCacheRoot and globalCacheRoot are the two baked-in strings passed
// to the build-script runner as cache roots.
const (
	localCacheRoot  = "zig-cache"
	globalCacheRoot = "ZLS_DONT_CARE"
)

// Config carries the server-wide settings the store needs: paths to the
// compiler, its standard library, the build-script runner, the global
// cache directory the runner is told about, and the fallback builtin file.
type Config struct {
	ZigExePath      string
	ZigLibPath      string
	BuildRunnerPath string
	GlobalCachePath string
	BuiltinPath     string
}

// FS is the filesystem the store reads through, injected so discovery and
// on-demand opens are testable without a real filesystem.
type FS struct {
	Exists   func(path string) bool
	ReadFile func(path string) ([]byte, error)
}

// DefaultFS wraps the real filesystem.
func DefaultFS() FS {
	return FS{
		Exists:   func(path string) bool { _, err := os.Stat(path); return err == nil },
		ReadFile: os.ReadFile,
	}
}

// Store is the document store. It is not safe for concurrent use — every
// operation assumes the caller (the language-server dispatch loop)
// serializes calls, per spec §5's single-threaded cooperative model.
type Store struct {
	cfg        Config
	collab     syntax.Collaborators
	translator *ctranslate.Translator
	fs         FS

	runBuild      func(buildrunner.Config) (buildrunner.RunResult, error)
	loadBuildJSON func(scriptDir string) (buildrunner.ZlsBuildJSON, error)

	handles    map[string]*Handle
	buildFiles []*BuildFileDescriptor
	stdURI     *string

	log *logrus.Entry
}

// New constructs a Store. collab supplies the parser/scope collaborators
// and translator supplies the C-import translator; both are out-of-scope
// collaborators the caller owns.
func New(cfg Config, collab syntax.Collaborators, translator *ctranslate.Translator) *Store {
	s := &Store{
		cfg:           cfg,
		collab:        collab,
		translator:    translator,
		fs:            DefaultFS(),
		runBuild:      buildrunner.Run,
		loadBuildJSON: buildrunner.LoadZlsBuildJSON,
		handles:       make(map[string]*Handle),
		log:           logrus.WithField("component", "store"),
	}
	if u, ok := stdUriFromLibPath(s.fs, cfg.ZigLibPath); ok {
		s.stdURI = &u
	}
	return s
}

// Deinit drops every handle and build-file descriptor without running the
// decrement bookkeeping — the store itself is going away, so there is
// nothing left to keep consistent.
func (s *Store) Deinit() {
	s.handles = make(map[string]*Handle)
	s.buildFiles = nil
}

// lookup is the handle registry's read-only accessor (spec §4.1 "lookup").
func (s *Store) lookup(uri string) (*Handle, bool) {
	h, ok := s.handles[uri]
	return h, ok
}

// Handles returns every handle currently in the registry, for debug
// tooling (internal/depgraph) that needs to snapshot the live reference
// graph spec.md §8's invariants describe.
func (s *Store) Handles() []*Handle {
	out := make([]*Handle, 0, len(s.handles))
	for _, h := range s.handles {
		out = append(out, h)
	}
	return out
}

// BuildFiles returns every build-file descriptor currently in the
// registry.
func (s *Store) BuildFiles() []*BuildFileDescriptor {
	return append([]*BuildFileDescriptor(nil), s.buildFiles...)
}

func contains(items []string, v string) bool {
	for _, it := range items {
		if it == v {
			return true
		}
	}
	return false
}
