package depgraph

import (
	"fmt"
	"strings"
)

// DOT renders snap as Graphviz DOT, in the teacher-adjacent pack's
// digraph-header-then-nodes-then-edges shape (cmd/graph/formatters/dot,
// stripped of its file-extension coloring — this graph has only two
// vertex kinds, not an open set of source-file extensions).
func DOT(snap Snapshot) string {
	var sb strings.Builder
	sb.WriteString("digraph store {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n\n")

	for _, v := range snap.Vertices {
		color := "white"
		label := v.URI
		if v.IsBuildFile {
			color = "lightblue"
			label = fmt.Sprintf("%s\\nrefs=%d", v.URI, v.Refs)
		} else {
			label = fmt.Sprintf("%s\\ncount=%d", v.URI, v.Count)
		}
		sb.WriteString(fmt.Sprintf("  %q [label=%q, style=filled, fillcolor=%s];\n", v.URI, label, color))
	}
	sb.WriteString("\n")

	for _, e := range snap.Edges {
		sb.WriteString(fmt.Sprintf("  %q -> %q [label=%q];\n", e.From, e.To, e.Kind))
	}

	sb.WriteString("}")
	return sb.String()
}
