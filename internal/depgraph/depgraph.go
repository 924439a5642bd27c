// Package depgraph builds a directed graph of a document store's live
// reference structure — handles and build-file descriptors as vertices,
// imports_used/associated_build_file/is_build_file as edges — for the
// `zls graph` debug command and for a cycle sanity-check exercised in
// tests. It performs no mutation: spec.md §8's invariants are about the
// store's own bookkeeping, this package only makes that bookkeeping
// inspectable.
//
// Grounded on depgraph/langsupport/langsupport.go and
// depgraph/golang/module_golang.go (vertex/edge construction idiom,
// tolerating ErrEdgeAlreadyExists), generalized from a source-file import
// graph to the store's handle/build-file reference graph.
package depgraph

import (
	"errors"
	"fmt"

	graphlib "github.com/dominikbraun/graph"

	"zls/internal/store"
)

// EdgeKind labels why an edge exists, for rendering and for the cycle
// check (is_build_file edges are expected to close a cycle back to their
// own document; the others must not).
type EdgeKind string

const (
	EdgeImportsUsed         EdgeKind = "imports_used"
	EdgeAssociatedBuildFile EdgeKind = "associated_build_file"
	EdgeIsBuildFile         EdgeKind = "is_build_file"
)

// Vertex is one node in the snapshot: either a document handle or a
// build-file descriptor, distinguished by IsBuildFile.
type Vertex struct {
	URI         string `json:"uri"`
	IsBuildFile bool   `json:"is_build_file"`
	Count       int    `json:"count,omitempty"`
	Refs        int    `json:"refs,omitempty"`
}

// Edge is one directed reference between two vertex URIs.
type Edge struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Kind EdgeKind `json:"kind"`
}

// Snapshot is the full graph taken from a store at one point in time.
type Snapshot struct {
	Vertices []Vertex `json:"vertices"`
	Edges    []Edge   `json:"edges"`
}

// Build takes a read-only snapshot of s's handle and build-file
// registries as a flat Snapshot (for JSON/DOT export). Vertices and
// edges are round-tripped through a dominikbraun/graph directed graph
// while building it, so malformed references (an edge to a URI with no
// matching vertex) are dropped rather than appearing in the snapshot.
func Build(s *store.Store) (Snapshot, error) {
	g := graphlib.New(graphlib.StringHash, graphlib.Directed())

	var snap Snapshot
	addVertex := func(uri string, isBuildFile bool, count, refs int) {
		if err := g.AddVertex(uri); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return
		}
		snap.Vertices = append(snap.Vertices, Vertex{URI: uri, IsBuildFile: isBuildFile, Count: count, Refs: refs})
	}

	handles := s.Handles()
	for _, h := range handles {
		addVertex(h.URI, false, h.Count, 0)
	}
	for _, b := range s.BuildFiles() {
		addVertex(b.URI, true, 0, b.Refs)
	}

	addEdge := func(from, to string, kind EdgeKind) error {
		if err := g.AddEdge(from, to); err != nil {
			if errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil
			}
			if errors.Is(err, graphlib.ErrVertexNotFound) {
				return nil
			}
			return fmt.Errorf("depgraph: add edge %s -> %s: %w", from, to, err)
		}
		snap.Edges = append(snap.Edges, Edge{From: from, To: to, Kind: kind})
		return nil
	}

	for _, h := range handles {
		for _, used := range h.ImportsUsed {
			if err := addEdge(h.URI, used, EdgeImportsUsed); err != nil {
				return Snapshot{}, err
			}
		}
		if h.AssociatedBuildFile != nil {
			if err := addEdge(h.URI, h.AssociatedBuildFile.URI, EdgeAssociatedBuildFile); err != nil {
				return Snapshot{}, err
			}
		}
		if h.IsBuildFile != nil {
			if err := addEdge(h.IsBuildFile.URI, h.URI, EdgeIsBuildFile); err != nil {
				return Snapshot{}, err
			}
		}
	}

	return snap, nil
}
