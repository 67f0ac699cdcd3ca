package graph

import (
	"iter"
)

// NeighborEntry is what neighbor traversal yields.
type NeighborEntry struct {
	Neighbor   string
	Attributes Attributes
}

// neighborSeq yields the distinct neighbors of node selected by sel. When a
// single slot is selected its keys are already distinct; otherwise the
// union of the slots is deduplicated.
func (g *Graph) neighborSeq(op string, sel Selector, node string) (iter.Seq[*nodeRecord], error) {
	if !g.accepts(sel.Type) {
		return emptySeq[*nodeRecord], nil
	}
	n, err := g.mustNode(op, node)
	if err != nil {
		return nil, err
	}
	t := g.effectiveType(sel.Type)
	dir := sel.Direction

	if t != Mixed {
		var slot *adjacency
		switch {
		case t == Undirected:
			slot = n.undirected
		case dir == DirIn:
			slot = n.in
		case dir == DirOut:
			slot = n.out
		}
		if slot != nil {
			return func(yield func(*nodeRecord) bool) {
				for _, set := range slot.all() {
					if !yield(set.first().opposite(n)) {
						return
					}
				}
			}, nil
		}
	}

	return func(yield func(*nodeRecord) bool) {
		seen := make(map[string]struct{})
		visit := func(slot *adjacency) bool {
			for key, set := range slot.all() {
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				if !yield(set.first().opposite(n)) {
					return false
				}
			}
			return true
		}
		if t != Undirected {
			if dir != DirOut && !visit(n.in) {
				return
			}
			if dir != DirIn && !visit(n.out) {
				return
			}
		}
		if t != Directed {
			visit(n.undirected)
		}
	}, nil
}

// NeighborEntries returns a lazy, restartable sequence over the neighbors
// of node selected by sel. A missing node is a NotFound error.
func (g *Graph) NeighborEntries(sel Selector, node string) (iter.Seq[NeighborEntry], error) {
	seq, err := g.neighborSeq("NeighborEntries", sel, node)
	if err != nil {
		return nil, err
	}
	return func(yield func(NeighborEntry) bool) {
		for n := range seq {
			if !yield(NeighborEntry{Neighbor: n.key, Attributes: n.attributes}) {
				return
			}
		}
	}, nil
}

// NeighborKeys returns a snapshot of the neighbors of node selected by sel.
func (g *Graph) NeighborKeys(sel Selector, node string) ([]string, error) {
	return g.neighborKeys("NeighborKeys", sel, node)
}

func (g *Graph) neighborKeys(op string, sel Selector, node string) ([]string, error) {
	seq, err := g.neighborSeq(op, sel, node)
	if err != nil {
		return nil, err
	}
	keys := []string{}
	for n := range seq {
		keys = append(keys, n.key)
	}
	return keys, nil
}

// ForEachNeighbor calls fn for every selected neighbor of node.
func (g *Graph) ForEachNeighbor(sel Selector, node string, fn func(NeighborEntry)) error {
	seq, err := g.neighborSeq("ForEachNeighbor", sel, node)
	if err != nil {
		return err
	}
	for n := range seq {
		fn(NeighborEntry{Neighbor: n.key, Attributes: n.attributes})
	}
	return nil
}

// ForEachNeighborUntil calls fn for every selected neighbor of node until
// fn returns true. It reports whether iteration was stopped.
func (g *Graph) ForEachNeighborUntil(sel Selector, node string, fn func(NeighborEntry) bool) (bool, error) {
	_, found, err := g.FindNeighbor(sel, node, fn)
	return found, err
}

// FindNeighbor returns the first selected neighbor of node matching pred.
func (g *Graph) FindNeighbor(sel Selector, node string, pred func(NeighborEntry) bool) (string, bool, error) {
	seq, err := g.neighborSeq("FindNeighbor", sel, node)
	if err != nil {
		return "", false, err
	}
	for n := range seq {
		if pred(NeighborEntry{Neighbor: n.key, Attributes: n.attributes}) {
			return n.key, true, nil
		}
	}
	return "", false, nil
}

// FilterNeighbors returns the selected neighbors of node matching pred.
func (g *Graph) FilterNeighbors(sel Selector, node string, pred func(NeighborEntry) bool) ([]string, error) {
	seq, err := g.neighborSeq("FilterNeighbors", sel, node)
	if err != nil {
		return nil, err
	}
	keys := []string{}
	for n := range seq {
		if pred(NeighborEntry{Neighbor: n.key, Attributes: n.attributes}) {
			keys = append(keys, n.key)
		}
	}
	return keys, nil
}

// SomeNeighbor reports whether any selected neighbor matches pred.
func (g *Graph) SomeNeighbor(sel Selector, node string, pred func(NeighborEntry) bool) (bool, error) {
	_, found, err := g.FindNeighbor(sel, node, pred)
	return found, err
}

// EveryNeighbor reports whether every selected neighbor matches pred.
func (g *Graph) EveryNeighbor(sel Selector, node string, pred func(NeighborEntry) bool) (bool, error) {
	_, found, err := g.FindNeighbor(sel, node, func(e NeighborEntry) bool { return !pred(e) })
	return !found, err
}

// MapNeighbors returns fn applied to every selected neighbor of node.
func MapNeighbors[T any](g *Graph, sel Selector, node string, fn func(NeighborEntry) T) ([]T, error) {
	seq, err := g.neighborSeq("MapNeighbors", sel, node)
	if err != nil {
		return nil, err
	}
	out := []T{}
	for n := range seq {
		out = append(out, fn(NeighborEntry{Neighbor: n.key, Attributes: n.attributes}))
	}
	return out, nil
}

// ReduceNeighbors folds fn over the selected neighbors of node.
func ReduceNeighbors[T any](g *Graph, sel Selector, node string, fn func(acc T, e NeighborEntry) T, initial T) (T, error) {
	seq, err := g.neighborSeq("ReduceNeighbors", sel, node)
	if err != nil {
		return initial, err
	}
	acc := initial
	for n := range seq {
		acc = fn(acc, NeighborEntry{Neighbor: n.key, Attributes: n.attributes})
	}
	return acc, nil
}

// Neighbors returns the distinct nodes sharing an edge with node.
func (g *Graph) Neighbors(node string) ([]string, error) {
	return g.neighborKeys("Neighbors", SelectAll, node)
}

// InNeighbors returns the sources of the directed edges pointing at node.
func (g *Graph) InNeighbors(node string) ([]string, error) {
	return g.neighborKeys("InNeighbors", SelectIn, node)
}

// OutNeighbors returns the targets of the directed edges leaving node.
func (g *Graph) OutNeighbors(node string) ([]string, error) {
	return g.neighborKeys("OutNeighbors", SelectOut, node)
}

// InboundNeighbors returns in-neighbors and undirected neighbors.
func (g *Graph) InboundNeighbors(node string) ([]string, error) {
	return g.neighborKeys("InboundNeighbors", SelectInbound, node)
}

// OutboundNeighbors returns out-neighbors and undirected neighbors.
func (g *Graph) OutboundNeighbors(node string) ([]string, error) {
	return g.neighborKeys("OutboundNeighbors", SelectOutbound, node)
}

// DirectedNeighbors returns in-neighbors and out-neighbors.
func (g *Graph) DirectedNeighbors(node string) ([]string, error) {
	return g.neighborKeys("DirectedNeighbors", SelectDirected, node)
}

// UndirectedNeighbors returns the nodes sharing an undirected edge with node.
func (g *Graph) UndirectedNeighbors(node string) ([]string, error) {
	return g.neighborKeys("UndirectedNeighbors", SelectUndirected, node)
}
