// Public Store API, spec §6. These methods are the only surface the
// transport layer (internal/lspserver) talks to.
package store

import (
	"bytes"

	"zls/internal/offsets"
	"zls/internal/syntax"
)

// Change is one entry of the edit list applyChanges (spec §6) consumes:
// either a range replacement (Range non-nil) or a full-text replacement
// (Range nil).
type Change struct {
	Range *offsets.Range
	Text  string
}

// Open returns the handle for uri, opening it fresh if it is not already
// registered (spec §4.1 "open"). Re-opening an already-open URI ignores
// the supplied text and just bumps the reference count.
func (s *Store) Open(uri, text string) (*Handle, error) {
	if h, ok := s.lookup(uri); ok {
		h.Count++
		if h.IsBuildFile != nil {
			h.IsBuildFile.Refs++
		}
		return h, nil
	}
	return s.newDocument(uri, []byte(text))
}

// Close decrements uri's reference count, tearing it (and anything it
// was the last reference to) down once it reaches zero. A missing uri
// is silently ignored.
func (s *Store) Close(uri string) {
	s.decrementCount(uri)
}

// GetHandle looks up a handle without any side effect.
func (s *Store) GetHandle(uri string) (*Handle, bool) {
	return s.lookup(uri)
}

// ApplySave is purely informational: the store has nothing to persist.
func (s *Store) ApplySave(h *Handle) {
	s.log.WithField("uri", h.URI).Debug("document saved")
}

// ApplyChanges implements spec §6's applyChanges semantics: find the
// last full-text replacement in changes, start from its text (or the
// current text if none), apply the edits strictly after it in order,
// then refresh.
func (s *Store) ApplyChanges(h *Handle, changes []Change, enc offsets.Encoding) error {
	lastFull := -1
	for i, c := range changes {
		if c.Range == nil {
			lastFull = i
		}
	}

	text := h.Text
	rest := changes
	if lastFull >= 0 {
		text = []byte(changes[lastFull].Text)
		rest = changes[lastFull+1:]
	}

	for _, c := range rest {
		if c.Range == nil {
			continue
		}
		start := offsets.PositionToByteOffset(text, c.Range.Start, enc)
		end := offsets.PositionToByteOffset(text, c.Range.End, enc)
		var buf bytes.Buffer
		buf.Write(text[:start])
		buf.WriteString(c.Text)
		buf.Write(text[end:])
		text = buf.Bytes()
	}

	h.Text = text
	return s.refresh(h)
}

// ResolveImport maps a raw import string on h to the handle it resolves
// to, opening or reusing it as needed (spec §4.6.2).
func (s *Store) ResolveImport(h *Handle, raw string) (*Handle, error) {
	return s.resolveImport(h, raw)
}

// ResolveCImport maps a C-import node on h to the handle for its
// translated source (spec §4.6.3).
func (s *Store) ResolveCImport(h *Handle, node syntax.NodeIndex) (*Handle, error) {
	return s.resolveCImport(h, node)
}

// UriFromImportStr is the read-only namespace lookup behind ResolveImport
// (spec §4.6.1), exposed directly for callers that only need the URI.
func (s *Store) UriFromImportStr(h *Handle, raw string) (string, bool, error) {
	return s.uriFromImportStr(h, raw)
}
