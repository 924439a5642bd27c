// Package syntax defines the document store's boundary with the parser
// and scope/symbol analyzer. spec.md §1 scopes both out of the store:
// "The store consumes two functions: parse(text) → tree and
// makeDocumentScope(tree) → scope, plus collectImports(tree) → list of
// raw import strings and collectCImportNodes(tree) → list of node
// indices." This package is that boundary, plus a tree-sitter-backed
// default Tree a caller can wire a real grammar into.
package syntax

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
)

// NodeIndex identifies a C-import node within a Tree. It is stable across
// a single parse but is NOT stable across edits — spec.md §4.7.2 is
// explicit that the C-import cache must key on content hash, not on this
// index, precisely because it is reassigned freely on every refresh.
type NodeIndex uint32

// Tree is the parsed syntax tree of one document. The store treats it as
// opaque beyond Close; everything else happens inside the injected
// collaborator functions below.
type Tree interface {
	Close()
}

// Scope is the document's scope/symbol summary, as produced by
// makeDocumentScope. The store only needs the two named completion sets
// spec.md §4.8 and §9 (Completion union) call out; everything else about
// scope is opaque to the store.
type Scope interface {
	Close()
	ErrorCompletions() []CompletionItem
	EnumCompletions() []CompletionItem
}

// CompletionItem is one entry of a tag-like completion set (an error set
// member or an enum member), keyed for deduplication by Key.
type CompletionItem struct {
	Key   string
	Label string
	Kind  string
}

// ParseFunc parses text (which the caller must zero-terminate if the
// underlying parser requires it) into a Tree. Parse failures propagate
// to the caller of newDocument/refresh per spec.md §7.
type ParseFunc func(text []byte) (Tree, error)

// ScopeFunc builds a Scope from an already-parsed Tree.
type ScopeFunc func(tree Tree) (Scope, error)

// ImportCollector extracts every raw import string appearing in tree, in
// source order, for the import resolver (spec.md §4.6) to map to URIs.
type ImportCollector func(tree Tree) []string

// CImportCollector extracts the node index of every C-import expression
// in tree, in source order.
type CImportCollector func(tree Tree) []NodeIndex

// CIncludeConverter extracts the C source text embedded at a C-import
// node. ok is false when the node's C-import expression is not
// translatable (spec.md §4.7.1 "Unsupported means skip silently").
type CIncludeConverter func(tree Tree, node NodeIndex) (source string, ok bool)

// Collaborators bundles the five injected functions a Store is
// configured with. None of them is implemented by this package — every
// field must be supplied by the caller, matching spec.md's framing of
// the parser and C-import extraction as external collaborators.
type Collaborators struct {
	Parse          ParseFunc
	MakeScope      ScopeFunc
	CollectImports ImportCollector
	CollectCImport CImportCollector
	ConvertCInclude CIncludeConverter
}

// TreeSitterTree adapts a *sitter.Tree to the Tree interface, preserving
// the teacher's Parser-wraps-sitter.Tree shape (internal/parser/parser.go)
// but without hardcoding a grammar: callers supply the *sitter.Language.
type TreeSitterTree struct {
	Tree *sitter.Tree
}

func (t *TreeSitterTree) Close() {
	if t.Tree != nil {
		t.Tree.Close()
	}
}

// IncrementalParser wraps a *sitter.Parser bound to a caller-supplied
// language, mirroring the teacher's Parser type (internal/parser/parser.go)
// generalized to accept any tree-sitter grammar rather than one baked in
// at init time.
type IncrementalParser struct {
	parser *sitter.Parser
	lang   *sitter.Language
}

// NewIncrementalParser creates a parser bound to lang. lang is nil-able
// only for tests that never call Parse; production callers must supply
// a real grammar (the actual Zig grammar is out of this module's scope
// per spec.md §1).
func NewIncrementalParser(lang *sitter.Language) *IncrementalParser {
	p := sitter.NewParser()
	if lang != nil {
		p.SetLanguage(lang)
	}
	return &IncrementalParser{parser: p, lang: lang}
}

// Parse implements ParseFunc against the bound grammar.
func (p *IncrementalParser) Parse(text []byte) (Tree, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, text)
	if err != nil {
		return nil, err
	}
	return &TreeSitterTree{Tree: tree}, nil
}

// Reparse applies edits to oldTree and reparses, reusing the old tree.
// The store's refresh does not call it; it always runs a full Parse.
// Mirrors the teacher's Parser.Update applying sitter.EditInput before
// reparsing.
func (p *IncrementalParser) Reparse(oldTree Tree, edits []sitter.EditInput, text []byte) (Tree, error) {
	st, ok := oldTree.(*TreeSitterTree)
	if !ok || st.Tree == nil {
		return p.Parse(text)
	}
	for _, e := range edits {
		st.Tree.Edit(e)
	}
	tree, err := p.parser.ParseCtx(context.Background(), st.Tree, text)
	if err != nil {
		return nil, err
	}
	return &TreeSitterTree{Tree: tree}, nil
}

// Close releases the underlying tree-sitter parser.
func (p *IncrementalParser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}
