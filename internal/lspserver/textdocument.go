package lspserver

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"zls/internal/offsets"
	"zls/internal/store"
)

func (s *Server) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	_, err := s.store.Open(params.TextDocument.URI, params.TextDocument.Text)
	return err
}

func (s *Server) textDocumentDidChange(
	context *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	h, ok := s.store.GetHandle(params.TextDocument.URI)
	if !ok {
		return fmt.Errorf("lspserver: no document open for %s", params.TextDocument.URI)
	}

	changes := make([]store.Change, 0, len(params.ContentChanges))
	for _, raw := range params.ContentChanges {
		c, err := convertContentChange(raw)
		if err != nil {
			return err
		}
		changes = append(changes, c)
	}

	return s.store.ApplyChanges(h, changes, s.encoding)
}

func (s *Server) textDocumentDidSave(
	context *glsp.Context,
	params *protocol.DidSaveTextDocumentParams,
) error {
	h, ok := s.store.GetHandle(params.TextDocument.URI)
	if !ok {
		return nil
	}
	// applySave is informational only (spec.md §6): didChange already
	// kept the handle's text and derived state in sync, so the save
	// payload's text (if any) is not re-applied here.
	s.store.ApplySave(h)
	return nil
}

func (s *Server) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	s.store.Close(params.TextDocument.URI)
	return nil
}

// convertContentChange maps one element of DidChangeTextDocumentParams's
// ContentChanges union to a store.Change. glsp decodes a change with no
// "range" key as TextDocumentContentChangeEventWhole (full-text
// replacement) and one with a "range" key as TextDocumentContentChangeEvent
// (range replacement); either shape maps directly onto applyChanges'
// range-or-full-text edit list (spec.md §6).
func convertContentChange(raw any) (store.Change, error) {
	switch c := raw.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return store.Change{Text: c.Text}, nil
	case protocol.TextDocumentContentChangeEvent:
		if c.Range == nil {
			return store.Change{Text: c.Text}, nil
		}
		return store.Change{
			Range: &offsets.Range{
				Start: offsets.Position{Line: c.Range.Start.Line, Character: c.Range.Start.Character},
				End:   offsets.Position{Line: c.Range.End.Line, Character: c.Range.End.Character},
			},
			Text: c.Text,
		}, nil
	default:
		return store.Change{}, fmt.Errorf("lspserver: unexpected change event type %T", raw)
	}
}
