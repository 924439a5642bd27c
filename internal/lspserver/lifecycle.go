package lspserver

import (
	"encoding/json"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"zls/internal/config"
	"zls/internal/store"
)

// initialize decodes initializationOptions into Config, overlays it onto
// internal/config's resolved defaults (environment variables, an
// optional zls.json at ConfigPath), and builds the document store from
// the result. Then it advertises the capabilities the server actually
// implements: incremental text sync with full-text save payloads and
// completion. Mirrors the shape of the teacher's initialize (decode
// InitializationOptions, configure the collaborator that owns path
// resolution, build server state) without the teacher's disk-backed
// cache restore — spec.md §1 Non-goals rule persistence out here.
func (s *Server) initialize(
	context *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	var cfg Config
	raw, err := json.Marshal(params.InitializationOptions)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	defaults, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	storeCfg := store.Config{
		ZigExePath:      defaults.ZigExePath,
		ZigLibPath:      defaults.ZigLibPath,
		BuildRunnerPath: defaults.BuildRunnerPath,
		GlobalCachePath: defaults.GlobalCachePath,
		BuiltinPath:     defaults.BuiltinPath,
	}
	overlayNonEmpty(&storeCfg.ZigExePath, cfg.ZigExePath)
	overlayNonEmpty(&storeCfg.ZigLibPath, cfg.ZigLibPath)
	overlayNonEmpty(&storeCfg.BuildRunnerPath, cfg.BuildRunnerPath)
	overlayNonEmpty(&storeCfg.GlobalCachePath, cfg.GlobalCachePath)
	overlayNonEmpty(&storeCfg.BuiltinPath, cfg.BuiltinPath)

	s.store = store.New(storeCfg, s.collab, s.translator)

	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
		Save:      &protocol.SaveOptions{IncludeText: &protocol.True},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: name,
		},
	}, nil
}

func (s *Server) initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

// overlayNonEmpty replaces *dst with v when the client actually supplied
// a value, leaving internal/config's resolved default otherwise.
func overlayNonEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// shutdown releases the store's handles and build-file descriptors. The
// store has nothing durable to flush — spec.md §1 Non-goals rule out
// persistence — so this is Deinit and nothing else.
func (s *Server) shutdown(context *glsp.Context) error {
	if s.store != nil {
		s.store.Deinit()
	}
	return nil
}
