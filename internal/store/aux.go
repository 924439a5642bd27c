package store

import (
	"path/filepath"

	"zls/internal/syntax"
	"zls/internal/uri"
)

// newDocumentFromUri implements spec §4.8: I/O failure returns absent,
// not an error.
func (s *Store) newDocumentFromUri(u string) (*Handle, error) {
	path, err := uri.ToPath(u)
	if err != nil {
		return nil, nil
	}
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, nil
	}
	return s.newDocument(u, data)
}

// stdUriFromLibPath implements spec §4.8: std.zig first, then the
// zig/std/std.zig fallback some compiler library layouts use.
func stdUriFromLibPath(fs FS, libPath string) (string, bool) {
	if libPath == "" {
		return "", false
	}
	if candidate := filepath.Join(libPath, "std", "std.zig"); fs.Exists(candidate) {
		return uri.FromPath(candidate), true
	}
	if candidate := filepath.Join(libPath, "zig", "std", "std.zig"); fs.Exists(candidate) {
		return uri.FromPath(candidate), true
	}
	return "", false
}

// tagCompletionItems implements tagStoreCompletionItems (spec §4.8):
// union sel's named completion set across h and every handle in
// h.ImportsUsed, deduplicated by key, preserving insertion order.
func (s *Store) tagCompletionItems(h *Handle, sel func(syntax.Scope) []syntax.CompletionItem) []syntax.CompletionItem {
	seen := make(map[string]bool)
	var out []syntax.CompletionItem
	add := func(items []syntax.CompletionItem) {
		for _, it := range items {
			if seen[it.Key] {
				continue
			}
			seen[it.Key] = true
			out = append(out, it)
		}
	}

	add(sel(h.Scope))
	for _, used := range h.ImportsUsed {
		if target, ok := s.lookup(used); ok {
			add(sel(target.Scope))
		}
	}
	return out
}

// ErrorCompletionItems unions h's error-set completions with those of
// every handle it retains in ImportsUsed.
func (s *Store) ErrorCompletionItems(h *Handle) []syntax.CompletionItem {
	return s.tagCompletionItems(h, func(sc syntax.Scope) []syntax.CompletionItem { return sc.ErrorCompletions() })
}

// EnumCompletionItems is the enum-member equivalent of ErrorCompletionItems.
func (s *Store) EnumCompletionItems(h *Handle) []syntax.CompletionItem {
	return s.tagCompletionItems(h, func(sc syntax.Scope) []syntax.CompletionItem { return sc.EnumCompletions() })
}
