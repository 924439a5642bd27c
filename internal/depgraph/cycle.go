package depgraph

import (
	"errors"

	graphlib "github.com/dominikbraun/graph"
)

// HasUnexpectedCycle reports whether snap's imports_used edges alone
// contain a cycle. associated_build_file/is_build_file edges are
// excluded deliberately: their own two-edge cycle back to a build
// file's own document is spec.md §3's intended "build file holds a
// reference to its own document" shape. An import cycle among
// imports_used edges would mean some handle in it can never reach
// count == 0 through ordinary closes, so it is built and topologically
// sorted with dominikbraun/graph purely to surface that error.
func HasUnexpectedCycle(snap Snapshot) (bool, error) {
	g := graphlib.New(graphlib.StringHash, graphlib.Directed())

	for _, v := range snap.Vertices {
		if err := g.AddVertex(v.URI); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return false, err
		}
	}
	for _, e := range snap.Edges {
		if e.Kind != EdgeImportsUsed {
			continue
		}
		if err := g.AddEdge(e.From, e.To); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
			return false, err
		}
	}

	if _, err := graphlib.TopologicalSort(g); err != nil {
		return true, nil
	}
	return false, nil
}
