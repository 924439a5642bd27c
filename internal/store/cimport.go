package store

import (
	"golang.org/x/crypto/blake2b"

	"zls/internal/ctranslate"
	"zls/internal/syntax"
)

// hashKey is the fixed all-zero key spec §3/§9 specifies: a
// cryptographic-quality 128-bit MAC makes collisions statistically
// impossible without needing a random seed, and a fixed key means the
// cache survives nothing across process restarts anyway (spec §9, "the
// cache is in-memory only").
var hashKey = make([]byte, 32)

func hashSource(source string) [16]byte {
	h, err := blake2b.New(16, hashKey)
	if err != nil {
		panic("store: blake2b.New(16, zero key) must always succeed")
	}
	h.Write([]byte(source))
	var out [16]byte
	copy(out[:], h.Sum(nil))
	return out
}

func findByHash(records []CImportRecord, hash [16]byte) *CImportRecord {
	for i := range records {
		if records[i].Hash == hash {
			return &records[i]
		}
	}
	return nil
}

func includeDirsFor(h *Handle) []string {
	if h.AssociatedBuildFile == nil {
		return nil
	}
	return h.AssociatedBuildFile.IncludeDirs
}

// refreshCImports implements both fresh collection (spec §4.7.1, called
// from newDocument with h.CImports empty) and cache-reusing refresh
// (spec §4.7.2, called from refresh with h.CImports holding the previous
// pass's records). A new record whose hash matches a previous one
// reuses the previous translation via Dupe without invoking the
// translator; every previous record is freed once the new list is
// built.
func (s *Store) refreshCImports(h *Handle, tree syntax.Tree) []CImportRecord {
	prev := h.CImports
	nodes := s.collab.CollectCImport(tree)
	includeDirs := includeDirsFor(h)

	var out []CImportRecord
	for _, node := range nodes {
		source, ok := s.collab.ConvertCInclude(tree, node)
		if !ok {
			continue
		}
		hash := hashSource(source)

		if reused := findByHash(prev, hash); reused != nil {
			out = append(out, CImportRecord{Node: node, Hash: hash, Result: reused.Result.Dupe()})
			continue
		}

		result, err := s.translator.Translate(hash, ctranslate.Config{ZigExePath: s.cfg.ZigExePath}, includeDirs, source)
		if err != nil {
			s.log.WithError(err).WithField("uri", h.URI).Warn("c-import translation failed")
			// A failure is still a record, not an absence (spec §3): it
			// stores with a nil Result so findByHash matches this hash on
			// the next refresh instead of re-invoking the translator.
			out = append(out, CImportRecord{Node: node, Hash: hash, Result: nil})
			continue
		}
		if result == nil {
			continue
		}
		out = append(out, CImportRecord{Node: node, Hash: hash, Result: result})
	}

	for _, rec := range prev {
		if rec.Result != nil {
			rec.Result.Deinit()
		}
	}
	return out
}
