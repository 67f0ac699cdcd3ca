package graph

import (
	"iter"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// Direction restricts directed traversal to one orientation.
type Direction uint8

const (
	DirNone Direction = iota // both orientations
	DirIn                    // edges pointing at the node
	DirOut                   // edges leaving the node
)

// String returns "", "in" or "out".
func (d Direction) String() string {
	switch d {
	case DirIn:
		return "in"
	case DirOut:
		return "out"
	default:
		return ""
	}
}

// ParseDirection parses "", "in", "out", "inbound" or "outbound".
// inbound and outbound are aliases of in and out.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "none", "all":
		return DirNone, nil
	case "in", "inbound":
		return DirIn, nil
	case "out", "outbound":
		return DirOut, nil
	}
	return DirNone, errors.InvalidArguments("invalid direction %q: expecting in or out", s)
}

// ParseSelector builds a Selector from a type and a direction name, as
// accepted by [ParseType] and [ParseDirection].
func ParseSelector(typ, dir string) (Selector, error) {
	t, err := ParseType(typ)
	if err != nil {
		return Selector{}, err
	}
	d, err := ParseDirection(dir)
	if err != nil {
		return Selector{}, err
	}
	return Selector{Type: t, Direction: d}, nil
}

// Selector picks a family of edges or neighbors: a kind of edge and, for
// directed edges, an orientation. The seven families of the traversal API
// are predeclared.
type Selector struct {
	Type      Type
	Direction Direction
}

var (
	// SelectAll selects every edge.
	SelectAll = Selector{Type: Mixed}
	// SelectIn selects directed edges pointing at the node.
	SelectIn = Selector{Type: Directed, Direction: DirIn}
	// SelectOut selects directed edges leaving the node.
	SelectOut = Selector{Type: Directed, Direction: DirOut}
	// SelectInbound selects SelectIn plus undirected edges.
	SelectInbound = Selector{Type: Mixed, Direction: DirIn}
	// SelectOutbound selects SelectOut plus undirected edges.
	SelectOutbound = Selector{Type: Mixed, Direction: DirOut}
	// SelectDirected selects directed edges.
	SelectDirected = Selector{Type: Directed}
	// SelectUndirected selects undirected edges.
	SelectUndirected = Selector{Type: Undirected}
)

// EdgeEntry is what edge traversal yields.
type EdgeEntry struct {
	Edge             string
	Attributes       Attributes
	Source           string
	Target           string
	SourceAttributes Attributes
	TargetAttributes Attributes
	Undirected       bool
}

func entryOf(e *edgeRecord) EdgeEntry {
	return EdgeEntry{
		Edge:             e.key,
		Attributes:       e.attributes,
		Source:           e.source.key,
		Target:           e.target.key,
		SourceAttributes: e.source.attributes,
		TargetAttributes: e.target.attributes,
		Undirected:       e.undirected,
	}
}

// edgeSeq resolves the scope of an edge traversal: the whole graph (no
// node), the edges of one node, or the edges between two nodes. Node
// existence is checked eagerly so errors surface before iteration starts.
func (g *Graph) edgeSeq(op string, sel Selector, nodes []string) (iter.Seq[*edgeRecord], error) {
	if len(nodes) > 2 {
		return nil, errors.InvalidArguments("%s: too many arguments (expecting 0, 1 or 2 nodes and got %d)", op, len(nodes))
	}
	if !g.accepts(sel.Type) {
		return emptySeq[*edgeRecord], nil
	}
	switch len(nodes) {
	case 0:
		return g.graphEdges(sel.Type), nil
	case 1:
		n, err := g.mustNode(op, nodes[0])
		if err != nil {
			return nil, err
		}
		return g.nodeEdges(n, g.effectiveType(sel.Type), sel.Direction), nil
	default:
		src, err := g.mustNode(op, nodes[0])
		if err != nil {
			return nil, err
		}
		if _, err := g.mustNode(op, nodes[1]); err != nil {
			return nil, err
		}
		return g.pathEdges(src, nodes[1], g.effectiveType(sel.Type), sel.Direction), nil
	}
}

func emptySeq[V any](func(V) bool) {}

// graphEdges yields every edge of the registry matching t, in insertion
// order. Orientation does not apply at graph scope.
func (g *Graph) graphEdges(t Type) iter.Seq[*edgeRecord] {
	filter := t != Mixed && t != g.opts.Type
	wantUndirected := t == Undirected
	return func(yield func(*edgeRecord) bool) {
		for _, e := range g.edges.all() {
			if filter && e.undirected != wantUndirected {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// nodeEdges yields the edges attached to n: in slot, out slot, then
// undirected slot. With no orientation a directed self-loop would show up
// in both in[self] and out[self]; out[self] is skipped.
func (g *Graph) nodeEdges(n *nodeRecord, t Type, dir Direction) iter.Seq[*edgeRecord] {
	return func(yield func(*edgeRecord) bool) {
		if t != Undirected {
			if dir != DirOut && !yieldSlot(n.in, "", false, yield) {
				return
			}
			if dir != DirIn && !yieldSlot(n.out, n.key, dir == DirNone, yield) {
				return
			}
		}
		if t != Directed {
			yieldSlot(n.undirected, "", false, yield)
		}
	}
}

// pathEdges yields the edges between src and the target key.
func (g *Graph) pathEdges(src *nodeRecord, target string, t Type, dir Direction) iter.Seq[*edgeRecord] {
	return func(yield func(*edgeRecord) bool) {
		if t != Undirected {
			if dir != DirOut && !yieldSet(src.in, target, yield) {
				return
			}
			loop := dir == DirNone && src.key == target
			if dir != DirIn && !loop && !yieldSet(src.out, target, yield) {
				return
			}
		}
		if t != Directed {
			yieldSet(src.undirected, target, yield)
		}
	}
}

func yieldSlot(slot *adjacency, self string, skipSelf bool, yield func(*edgeRecord) bool) bool {
	for neighbor, set := range slot.all() {
		if skipSelf && neighbor == self {
			continue
		}
		for _, e := range set.edges {
			if !yield(e) {
				return false
			}
		}
	}
	return true
}

func yieldSet(slot *adjacency, neighbor string, yield func(*edgeRecord) bool) bool {
	set, ok := slot.get(neighbor)
	if !ok {
		return true
	}
	for _, e := range set.edges {
		if !yield(e) {
			return false
		}
	}
	return true
}

// EdgeEntries returns a lazy, restartable sequence over the edges selected
// by sel: every edge when nodes is empty, the edges attached to nodes[0],
// or the edges between nodes[0] and nodes[1]. Missing nodes are a NotFound
// error and more than two nodes an InvalidArguments error. A selector the
// graph cannot hold yields nothing.
func (g *Graph) EdgeEntries(sel Selector, nodes ...string) (iter.Seq[EdgeEntry], error) {
	seq, err := g.edgeSeq("EdgeEntries", sel, nodes)
	if err != nil {
		return nil, err
	}
	return func(yield func(EdgeEntry) bool) {
		for e := range seq {
			if !yield(entryOf(e)) {
				return
			}
		}
	}, nil
}

// EdgeKeys returns a snapshot of the keys selected by sel.
// See [Graph.EdgeEntries] for the meaning of nodes.
func (g *Graph) EdgeKeys(sel Selector, nodes ...string) ([]string, error) {
	return g.edgeKeys("EdgeKeys", sel, nodes)
}

func (g *Graph) edgeKeys(op string, sel Selector, nodes []string) ([]string, error) {
	seq, err := g.edgeSeq(op, sel, nodes)
	if err != nil {
		return nil, err
	}
	keys := []string{}
	for e := range seq {
		keys = append(keys, e.key)
	}
	return keys, nil
}

// ForEachEdge calls fn for every selected edge.
func (g *Graph) ForEachEdge(sel Selector, fn func(EdgeEntry), nodes ...string) error {
	seq, err := g.edgeSeq("ForEachEdge", sel, nodes)
	if err != nil {
		return err
	}
	for e := range seq {
		fn(entryOf(e))
	}
	return nil
}

// ForEachEdgeUntil calls fn for every selected edge until fn returns true.
// It reports whether iteration was stopped.
func (g *Graph) ForEachEdgeUntil(sel Selector, fn func(EdgeEntry) bool, nodes ...string) (bool, error) {
	seq, err := g.edgeSeq("ForEachEdgeUntil", sel, nodes)
	if err != nil {
		return false, err
	}
	for e := range seq {
		if fn(entryOf(e)) {
			return true, nil
		}
	}
	return false, nil
}

// FindEdge returns the key of the first selected edge matching pred.
func (g *Graph) FindEdge(sel Selector, pred func(EdgeEntry) bool, nodes ...string) (string, bool, error) {
	seq, err := g.edgeSeq("FindEdge", sel, nodes)
	if err != nil {
		return "", false, err
	}
	for e := range seq {
		if pred(entryOf(e)) {
			return e.key, true, nil
		}
	}
	return "", false, nil
}

// FilterEdges returns the keys of the selected edges matching pred.
func (g *Graph) FilterEdges(sel Selector, pred func(EdgeEntry) bool, nodes ...string) ([]string, error) {
	seq, err := g.edgeSeq("FilterEdges", sel, nodes)
	if err != nil {
		return nil, err
	}
	keys := []string{}
	for e := range seq {
		if pred(entryOf(e)) {
			keys = append(keys, e.key)
		}
	}
	return keys, nil
}

// SomeEdge reports whether any selected edge matches pred.
func (g *Graph) SomeEdge(sel Selector, pred func(EdgeEntry) bool, nodes ...string) (bool, error) {
	_, found, err := g.FindEdge(sel, pred, nodes...)
	return found, err
}

// EveryEdge reports whether every selected edge matches pred. It is true
// when nothing is selected.
func (g *Graph) EveryEdge(sel Selector, pred func(EdgeEntry) bool, nodes ...string) (bool, error) {
	_, found, err := g.FindEdge(sel, func(e EdgeEntry) bool { return !pred(e) }, nodes...)
	return !found, err
}

// MapEdges returns fn applied to every selected edge.
func MapEdges[T any](g *Graph, sel Selector, fn func(EdgeEntry) T, nodes ...string) ([]T, error) {
	seq, err := g.edgeSeq("MapEdges", sel, nodes)
	if err != nil {
		return nil, err
	}
	out := []T{}
	for e := range seq {
		out = append(out, fn(entryOf(e)))
	}
	return out, nil
}

// ReduceEdges folds fn over the selected edges, starting from initial.
func ReduceEdges[T any](g *Graph, sel Selector, fn func(acc T, e EdgeEntry) T, initial T, nodes ...string) (T, error) {
	seq, err := g.edgeSeq("ReduceEdges", sel, nodes)
	if err != nil {
		return initial, err
	}
	acc := initial
	for e := range seq {
		acc = fn(acc, entryOf(e))
	}
	return acc, nil
}

// Edges returns every edge key, the keys of the edges attached to a node,
// or the keys of the edges between two nodes.
func (g *Graph) Edges(nodes ...string) ([]string, error) {
	return g.edgeKeys("Edges", SelectAll, nodes)
}

// InEdges is [Graph.Edges] restricted to directed edges pointing at the node.
func (g *Graph) InEdges(nodes ...string) ([]string, error) {
	return g.edgeKeys("InEdges", SelectIn, nodes)
}

// OutEdges is [Graph.Edges] restricted to directed edges leaving the node.
func (g *Graph) OutEdges(nodes ...string) ([]string, error) {
	return g.edgeKeys("OutEdges", SelectOut, nodes)
}

// InboundEdges is [Graph.Edges] restricted to in-edges and undirected edges.
func (g *Graph) InboundEdges(nodes ...string) ([]string, error) {
	return g.edgeKeys("InboundEdges", SelectInbound, nodes)
}

// OutboundEdges is [Graph.Edges] restricted to out-edges and undirected edges.
func (g *Graph) OutboundEdges(nodes ...string) ([]string, error) {
	return g.edgeKeys("OutboundEdges", SelectOutbound, nodes)
}

// DirectedEdges is [Graph.Edges] restricted to directed edges.
func (g *Graph) DirectedEdges(nodes ...string) ([]string, error) {
	return g.edgeKeys("DirectedEdges", SelectDirected, nodes)
}

// UndirectedEdges is [Graph.Edges] restricted to undirected edges.
func (g *Graph) UndirectedEdges(nodes ...string) ([]string, error) {
	return g.edgeKeys("UndirectedEdges", SelectUndirected, nodes)
}
