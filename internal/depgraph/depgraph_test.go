package depgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zls/internal/ctranslate"
	"zls/internal/depgraph"
	"zls/internal/store"
	"zls/internal/syntax"
)

type fakeTree struct{}

func (fakeTree) Close() {}

type fakeScope struct{}

func (fakeScope) Close()                                   {}
func (fakeScope) ErrorCompletions() []syntax.CompletionItem { return nil }
func (fakeScope) EnumCompletions() []syntax.CompletionItem  { return nil }

func fakeCollaborators() syntax.Collaborators {
	return syntax.Collaborators{
		Parse:           func([]byte) (syntax.Tree, error) { return fakeTree{}, nil },
		MakeScope:       func(syntax.Tree) (syntax.Scope, error) { return fakeScope{}, nil },
		CollectImports:  func(syntax.Tree) []string { return nil },
		CollectCImport:  func(syntax.Tree) []syntax.NodeIndex { return nil },
		ConvertCInclude: func(syntax.Tree, syntax.NodeIndex) (string, bool) { return "", false },
	}
}

func TestBuildSnapshotSingleDocument(t *testing.T) {
	s := store.New(store.Config{}, fakeCollaborators(), ctranslate.NewTranslator(nil, 0))

	_, err := s.Open("file:///a.zig", "const x = 1;\n")
	require.NoError(t, err)

	snap, err := depgraph.Build(s)
	require.NoError(t, err)
	require.Len(t, snap.Vertices, 1)
	assert.Equal(t, "file:///a.zig", snap.Vertices[0].URI)
	assert.False(t, snap.Vertices[0].IsBuildFile)
	assert.Equal(t, 1, snap.Vertices[0].Count)
	assert.Empty(t, snap.Edges)
}

func TestDOTRendersVertexAndEdge(t *testing.T) {
	snap := depgraph.Snapshot{
		Vertices: []depgraph.Vertex{{URI: "file:///a.zig", Count: 1}, {URI: "file:///b.zig", Count: 1}},
		Edges:    []depgraph.Edge{{From: "file:///a.zig", To: "file:///b.zig", Kind: depgraph.EdgeImportsUsed}},
	}
	out := depgraph.DOT(snap)
	assert.Contains(t, out, "digraph store")
	assert.Contains(t, out, `"file:///a.zig"`)
	assert.Contains(t, out, `"file:///a.zig" -> "file:///b.zig"`)
}

func TestJSONContainsVertexURI(t *testing.T) {
	snap := depgraph.Snapshot{
		Vertices: []depgraph.Vertex{{URI: "file:///a.zig", Count: 1}},
	}
	data, err := depgraph.JSON(snap)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"file:///a.zig"`)
}

func TestHasUnexpectedCycleDetectsImportCycle(t *testing.T) {
	snap := depgraph.Snapshot{
		Vertices: []depgraph.Vertex{{URI: "a"}, {URI: "b"}},
		Edges: []depgraph.Edge{
			{From: "a", To: "b", Kind: depgraph.EdgeImportsUsed},
			{From: "b", To: "a", Kind: depgraph.EdgeImportsUsed},
		},
	}
	cyclic, err := depgraph.HasUnexpectedCycle(snap)
	require.NoError(t, err)
	assert.True(t, cyclic)
}

func TestHasUnexpectedCycleIgnoresBuildFileBackReference(t *testing.T) {
	snap := depgraph.Snapshot{
		Vertices: []depgraph.Vertex{{URI: "build.zig", IsBuildFile: true}, {URI: "a.zig"}},
		Edges: []depgraph.Edge{
			{From: "a.zig", To: "build.zig", Kind: depgraph.EdgeAssociatedBuildFile},
			{From: "build.zig", To: "build.zig", Kind: depgraph.EdgeIsBuildFile},
		},
	}
	cyclic, err := depgraph.HasUnexpectedCycle(snap)
	require.NoError(t, err)
	assert.False(t, cyclic)
}
