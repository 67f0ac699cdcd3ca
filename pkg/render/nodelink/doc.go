// Package nodelink draws graphs as node-link diagrams with Graphviz.
//
// # Usage
//
// Convert a graph to DOT source, then render it:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{RankDir: "LR"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Or do both in one step, reporting to the observability hooks:
//
//	png, err := nodelink.Render(ctx, g, nodelink.FormatPNG, nodelink.Options{})
//
// # Graph types
//
// Undirected graphs become a DOT "graph". Directed and mixed graphs become a
// "digraph", with undirected edges drawn as dir=none. Parallel edges and
// self-loops are drawn as Graphviz draws them.
//
// Rendering runs Graphviz compiled to WebAssembly through
// [github.com/goccy/go-graphviz], so no external binaries are needed.
package nodelink
