package graph

import (
	"fmt"
	"strings"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// NullCopy returns an empty graph with the same options, overridden by
// opts. Nothing else is copied.
func (g *Graph) NullCopy(opts ...Option) (*Graph, error) {
	return NewFromOptions(resolveOptions(g.opts, opts))
}

// EmptyCopy returns a graph with the same nodes (attribute maps copied) and
// no edges. No events are emitted.
func (g *Graph) EmptyCopy(opts ...Option) (*Graph, error) {
	c, err := g.NullCopy(opts...)
	if err != nil {
		return nil, err
	}
	for key, n := range g.nodes.all() {
		c.nodes.set(key, newNodeRecord(c.opts.Type, key, n.attributes.Clone()))
	}
	return c, nil
}

// Copy returns a deep copy of the structure: same graph attributes, nodes
// and edges with their keys, attribute maps copied. opts may only widen the
// options (to mixed, multi, or allowing self-loops); narrowing them is an
// InvalidArguments error.
func (g *Graph) Copy(opts ...Option) (*Graph, error) {
	target := resolveOptions(g.opts, opts)
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if !g.opts.widenedBy(target) {
		return nil, errors.InvalidArguments("Copy: cannot narrow the options of a graph (from %+v to %+v)", g.opts, target)
	}

	c, err := g.EmptyCopy(opts...)
	if err != nil {
		return nil, err
	}
	c.attributes = g.attributes.Clone()
	for key, e := range g.edges.all() {
		src, _ := c.nodes.get(e.source.key)
		tgt, _ := c.nodes.get(e.target.key)
		c.attachEdge(key, e.generated, e.undirected, src, tgt, e.attributes.Clone())
	}
	return c, nil
}

// UpgradeToMixed lets the graph accept both kinds of edges. It is a no-op
// on a mixed graph.
func (g *Graph) UpgradeToMixed() {
	if g.opts.Type == Mixed {
		return
	}
	for _, n := range g.nodes.all() {
		n.upgradeToMixed()
	}
	g.opts.Type = Mixed
}

// UpgradeToMulti lets the graph accept parallel edges. It is a no-op on a
// multi graph.
func (g *Graph) UpgradeToMulti() {
	if g.opts.Multi {
		return
	}
	g.upgradeStructureIndexToMulti()
	g.opts.Multi = true
}

// Inspection is a human-oriented summary of a graph.
type Inspection struct {
	Name           string                `json:"name"`
	Options        Options               `json:"options"`
	Order          int                   `json:"order"`
	Size           int                   `json:"size"`
	DirectedSize   int                   `json:"directedSize"`
	UndirectedSize int                   `json:"undirectedSize"`
	SelfLoops      int                   `json:"selfLoops"`
	Attributes     Attributes            `json:"attributes"`
	Nodes          []string              `json:"nodes"`
	Edges          []string              `json:"edges"`
	EdgeAttributes map[string]Attributes `json:"edgeAttributes,omitempty"`
}

// Name returns the constructor-style name of the graph kind, such as
// "Graph", "DirectedGraph" or "MultiUndirectedGraph".
func (g *Graph) Name() string {
	var b strings.Builder
	if g.opts.Multi {
		b.WriteString("Multi")
	}
	switch g.opts.Type {
	case Directed:
		b.WriteString("Directed")
	case Undirected:
		b.WriteString("Undirected")
	}
	b.WriteString("Graph")
	return b.String()
}

// Inspect summarizes the graph. Edges are described by labels of the form
// "[key]: (source)->(target)", with "--" for undirected edges. Generated
// keys are left out of labels, and numbered in multi graphs to keep parallel
// edges apart.
func (g *Graph) Inspect() Inspection {
	in := Inspection{
		Name:           g.Name(),
		Options:        g.opts,
		Order:          g.Order(),
		Size:           g.Size(),
		DirectedSize:   g.directedSize,
		UndirectedSize: g.undirectedSize,
		SelfLoops:      g.SelfLoopCount(),
		Attributes:     g.attributes.Clone(),
		Nodes:          g.Nodes(),
		Edges:          make([]string, 0, g.Size()),
		EdgeAttributes: make(map[string]Attributes),
	}
	i := 0
	for _, e := range g.edges.all() {
		label := edgeLabel(e, g.opts.Multi, i)
		if e.generated && g.opts.Multi {
			i++
		}
		in.Edges = append(in.Edges, label)
		if len(e.attributes) > 0 {
			in.EdgeAttributes[label] = e.attributes.Clone()
		}
	}
	return in
}

func edgeLabel(e *edgeRecord, multi bool, index int) string {
	arrow := "->"
	if e.undirected {
		arrow = "--"
	}
	path := fmt.Sprintf("(%s)%s(%s)", e.source.key, arrow, e.target.key)
	switch {
	case !e.generated:
		return fmt.Sprintf("[%s]: %s", e.key, path)
	case multi:
		return fmt.Sprintf("%d. %s", index, path)
	default:
		return path
	}
}

// String renders the inspection in a compact multi-line form.
func (g *Graph) String() string {
	in := g.Inspect()
	var b strings.Builder
	fmt.Fprintf(&b, "%s {order: %d, size: %d}", in.Name, in.Order, in.Size)
	if len(in.Attributes) > 0 {
		fmt.Fprintf(&b, "\n  attributes: %v", map[string]any(in.Attributes))
	}
	if len(in.Nodes) > 0 {
		fmt.Fprintf(&b, "\n  nodes: %s", strings.Join(in.Nodes, ", "))
	}
	for _, label := range in.Edges {
		fmt.Fprintf(&b, "\n  %s", label)
	}
	return b.String()
}
