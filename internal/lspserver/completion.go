package lspserver

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"zls/internal/syntax"
)

// textDocumentCompletion surfaces errorCompletionItems/enumCompletionItems
// (spec.md §6) as the only completions this server offers: the tag-like
// symbol union across a handle and everything in its ImportsUsed.
func (s *Server) textDocumentCompletion(
	context *glsp.Context,
	params *protocol.CompletionParams,
) (any, error) {
	h, ok := s.store.GetHandle(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	items := make([]protocol.CompletionItem, 0)
	kindConst := protocol.CompletionItemKindConstant
	for _, it := range s.store.ErrorCompletionItems(h) {
		items = append(items, completionItem(it, kindConst))
	}
	kindEnum := protocol.CompletionItemKindEnumMember
	for _, it := range s.store.EnumCompletionItems(h) {
		items = append(items, completionItem(it, kindEnum))
	}

	return items, nil
}

func completionItem(it syntax.CompletionItem, kind protocol.CompletionItemKind) protocol.CompletionItem {
	k := kind
	return protocol.CompletionItem{
		Label: it.Label,
		Kind:  &k,
	}
}
