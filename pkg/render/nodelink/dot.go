package nodelink

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/graphkit/pkg/graph"
)

// RankDir values accepted by [Options].
var RankDirs = []string{"TB", "LR", "BT", "RL"}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds node and edge attributes to the labels.
	// When false, only the node key is shown.
	Detailed bool

	// RankDir is the Graphviz layout direction. Empty means TB.
	RankDir string

	// EdgeLabels labels every edge with its key.
	EdgeLabels bool

	// LabelAttribute, when set, names a node attribute whose value replaces
	// the key as the node label.
	LabelAttribute string
}

// ToDOT converts a graph to Graphviz DOT source.
//
// Undirected graphs produce a "graph" with "--" edges. Directed and mixed
// graphs produce a "digraph"; undirected edges of a mixed graph are drawn
// without arrowheads. Parallel edges and self-loops are kept.
func ToDOT(g *graph.Graph, opts Options) string {
	undirected := g.Type() == graph.Undirected
	kind, arrow := "digraph", "->"
	if undirected {
		kind, arrow = "graph", "--"
	}

	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	g.ForEachNode(func(key string, attrs graph.Attributes) {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", key, nodeLabel(key, attrs, opts))
	})

	buf.WriteString("\n")
	_ = g.ForEachEdge(graph.SelectAll, func(e graph.EdgeEntry) {
		attrs := edgeAttrs(e, opts, undirected)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q %s %q;\n", e.Source, arrow, e.Target)
			return
		}
		fmt.Fprintf(&buf, "  %q %s %q [%s];\n", e.Source, arrow, e.Target, strings.Join(attrs, ", "))
	})

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(key string, attrs graph.Attributes, opts Options) string {
	label := key
	if opts.LabelAttribute != "" {
		if v, ok := attrs[opts.LabelAttribute]; ok && v != nil {
			label = fmt.Sprint(v)
		}
	}
	if !opts.Detailed || len(attrs) == 0 {
		return label
	}
	return label + "\n" + fmtAttributes(attrs)
}

func edgeAttrs(e graph.EdgeEntry, opts Options, undirectedGraph bool) []string {
	var attrs []string
	if e.Undirected && !undirectedGraph {
		attrs = append(attrs, "dir=none")
	}

	var parts []string
	if opts.EdgeLabels {
		parts = append(parts, e.Edge)
	}
	if opts.Detailed && len(e.Attributes) > 0 {
		parts = append(parts, fmtAttributes(e.Attributes))
	}
	if len(parts) > 0 {
		attrs = append(attrs, fmt.Sprintf("label=%q", strings.Join(parts, "\n")))
	}
	return attrs
}

func fmtAttributes(attrs graph.Attributes) string {
	lines := make([]string, 0, len(attrs))
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		lines = append(lines, fmt.Sprintf("%s: %v", k, attrs[k]))
	}
	return strings.Join(lines, "\n")
}
