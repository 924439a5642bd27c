// Package ctranslate implements the C-import translator spec.md §1 lists
// as an external collaborator ("convertCInclude(tree, node) → C source
// text or 'unsupported'" and "translate(config, include_dirs, source) →
// result"). The store only ever talks to the Translator.Translate method;
// this package supplies the production implementation that shells out to
// the configured compiler's C-translation subcommand, plus a process-wide
// cache layered underneath the store's own per-document reuse
// (SPEC_FULL.md, Supplemented Features §3).
//
// Translated output is kept in memory, never written to disk: spec.md §1
// Non-goals rule out persistence, so synthetic translated documents live
// only as long as the Translator that produced them.
package ctranslate

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"zls/internal/procutil"
)

// SyntheticScheme is the URI scheme minted for successfully translated
// C-imports. Handles at these URIs are opened from the Translator's
// in-memory content store rather than the filesystem.
const SyntheticScheme = "zls-translate-c"

// Result is the outcome of translating one C-import's extracted source.
// A nil *Result (with nil error) means "absent" per spec.md §4.7.1 —
// the particular C-import is silently dropped from the record set.
type Result struct {
	URI string
}

// Dupe deep-copies a Result so the per-document cache (spec.md §4.7.2)
// can hand out independent copies across refreshes without aliasing.
func (r *Result) Dupe() *Result {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}

// Deinit releases any resources Result owns. Kept for symmetry with the
// spec's explicit "result.dupe / result.deinit" lifecycle; nothing here
// needs releasing under Go's GC, but the hook exists for future result
// shapes and for reviewers used to seeing the teardown half of every Dupe.
func (r *Result) Deinit() {}

// Config carries everything the translator subprocess needs beyond the
// extracted source and include directories.
type Config struct {
	ZigExePath string
}

// rawTranslate is the shape a low-level translation strategy implements:
// given a content hash (for naming/logging only) and the extracted
// source, produce Zig source text or report failure/absence.
type rawTranslate func(hash [16]byte, cfg Config, includeDirs []string, source string) (text []byte, absent bool, err error)

// ShellTranslate invokes "<zig_exe> translate-c" with source on stdin and
// the include directories as -I flags. Nonzero exit is reported as an
// error; callers (the store) log and swallow it per spec.md §4.4.3's
// RunFailed policy, which this subprocess shares.
func ShellTranslate(hash [16]byte, cfg Config, includeDirs []string, source string) (text []byte, absent bool, err error) {
	if cfg.ZigExePath == "" {
		return nil, false, fmt.Errorf("ctranslate: zig_exe_path not configured")
	}

	args := []string{"translate-c"}
	for _, dir := range includeDirs {
		args = append(args, "-I", dir)
	}
	args = append(args, "-")

	cmd := exec.CommandContext(context.Background(), cfg.ZigExePath, args...)
	cmd.Stdin = bytes.NewReader([]byte(source))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if runErr := cmd.Run(); runErr != nil {
		logrus.WithFields(logrus.Fields{
			"op":     "translate-c",
			"hash":   fmt.Sprintf("%x", hash),
			"stderr": procutil.Tail(stderr.String(), 4096),
		}).Warn("c-import translation failed")
		return nil, false, fmt.Errorf("ctranslate: translate-c failed: %w", runErr)
	}
	return stdout.Bytes(), false, nil
}

// Translator turns extracted C source into a synthetic, openable Zig
// document. It holds two caches: a bounded process-wide hash→Result LRU
// (the SPEC_FULL.md performance supplement) and the in-memory content
// backing every synthetic URI it has ever minted, keyed by URI so the
// store can open/reopen it the same way it opens a real file.
type Translator struct {
	raw   rawTranslate
	cache *lru.Cache[[16]byte, *Result]

	mu      sync.RWMutex
	content map[string][]byte
}

// NewTranslator wraps raw with an LRU of the given size. size <= 0
// disables the LRU (every miss still reaches raw); the content store is
// always unbounded for the lifetime of the Translator since every live
// Result's URI must remain openable for as long as some handle holds it.
func NewTranslator(raw rawTranslate, size int) *Translator {
	t := &Translator{raw: raw, content: make(map[string][]byte)}
	if size > 0 {
		if c, err := lru.New[[16]byte, *Result](size); err == nil {
			t.cache = c
		}
	}
	return t
}

// Translate returns a cached Result for hash if present, else invokes the
// wrapped translator and, on success, caches the result and registers its
// content for later Open calls.
func (t *Translator) Translate(hash [16]byte, cfg Config, includeDirs []string, source string) (*Result, error) {
	if t.cache != nil {
		if cached, ok := t.cache.Get(hash); ok {
			logrus.WithField("hash", fmt.Sprintf("%x", hash)).Debug("c-import translation cache hit")
			return cached.Dupe(), nil
		}
	}

	text, absent, err := t.raw(hash, cfg, includeDirs, source)
	if err != nil {
		return nil, err
	}
	if absent {
		return nil, nil
	}

	u := fmt.Sprintf("%s://%s", SyntheticScheme, uuid.New().String())
	t.mu.Lock()
	t.content[u] = text
	t.mu.Unlock()

	result := &Result{URI: u}
	if t.cache != nil {
		t.cache.Add(hash, result)
	}
	return result, nil
}

// Open returns the in-memory content registered for a synthetic URI this
// Translator minted, for the store's newDocumentFromUri equivalent.
func (t *Translator) Open(u string) ([]byte, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	text, ok := t.content[u]
	return text, ok
}

// IsSynthetic reports whether u names a document this Translator, not the
// filesystem, is the source of truth for.
func IsSynthetic(u string) bool {
	return len(u) > len(SyntheticScheme)+3 && u[:len(SyntheticScheme)] == SyntheticScheme
}
