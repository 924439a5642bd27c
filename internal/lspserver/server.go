// Package lspserver wires the document store behind a glsp transport:
// initialize negotiates configuration and builds the store, and the
// textDocument/* notifications drive Store.Open/ApplyChanges/Close
// exactly as spec.md §6 describes them. Grounded on the teacher's
// internal/server (Server struct + protocol.Handler wiring), generalized
// from its note-cache/manager pair to a single *store.Store.
package lspserver

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"zls/internal/ctranslate"
	"zls/internal/offsets"
	"zls/internal/store"
	"zls/internal/syntax"
)

// name is the glsp server identity string reported to clients.
const name = "zls"

// Config is the shape of the LSP initializationOptions payload, mirroring
// spec.md §6's "Environment / configuration values consumed". Every
// field overlays internal/config's resolved defaults when non-empty;
// ConfigPath additionally points initialize at a workspace-relative
// zls.json the client wants loaded as a lower-priority layer underneath
// these fields.
type Config struct {
	ConfigPath      string `json:"config_path"`
	ZigExePath      string `json:"zig_exe_path"`
	ZigLibPath      string `json:"zig_lib_path"`
	BuildRunnerPath string `json:"build_runner_path"`
	GlobalCachePath string `json:"global_cache_path"`
	BuiltinPath     string `json:"builtin_path"`
}

// Server adapts *store.Store to glsp's protocol.Handler callbacks. The
// parser/scope analyzer and C-import translator are supplied by the
// caller at construction time (spec.md §1 scopes both out of the store),
// not rebuilt per initialize.
type Server struct {
	handler    *protocol.Handler
	collab     syntax.Collaborators
	translator *ctranslate.Translator

	store *store.Store
	// encoding is fixed to UTF-16, the position encoding the base LSP
	// specification (protocol_3_16, the version this server speaks)
	// mandates; 3.17's negotiable positionEncoding capability has no
	// counterpart at this protocol version.
	encoding offsets.Encoding
}

// NewServer builds a glsp *server.Server backed by a fresh lspserver.Server.
// collab and translator are the out-of-scope collaborators spec.md §1
// requires the caller to supply; the document store itself is created
// lazily, inside initialize, once the client's initializationOptions are
// known.
func NewServer(collab syntax.Collaborators, translator *ctranslate.Translator) (*glspserver.Server, error) {
	s := &Server{
		collab:     collab,
		translator: translator,
		encoding:   offsets.UTF16,
	}
	s.handler = &protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		TextDocumentDidOpen:    s.textDocumentDidOpen,
		TextDocumentDidChange:  s.textDocumentDidChange,
		TextDocumentDidSave:    s.textDocumentDidSave,
		TextDocumentDidClose:   s.textDocumentDidClose,
		TextDocumentCompletion: s.textDocumentCompletion,
	}
	return glspserver.NewServer(s.handler, name, false), nil
}
