package graph

import "iter"

// AdjacencyEntry is one (node, neighbor, edge) triple of the adjacency.
type AdjacencyEntry struct {
	Source           string
	Target           string
	SourceAttributes Attributes
	TargetAttributes Attributes
	Edge             string
	EdgeAttributes   Attributes
	Undirected       bool
}

// Adjacency returns a lazy sequence over the adjacency of the graph: for
// every node in insertion order, its outgoing directed edges then its
// undirected edges. Target is always the neighbor, so an undirected edge is
// reported once from each endpoint while an undirected self-loop is
// reported once.
func (g *Graph) Adjacency() iter.Seq[AdjacencyEntry] {
	return func(yield func(AdjacencyEntry) bool) {
		for _, n := range g.nodes.all() {
			if g.opts.Type != Undirected && !yieldAdjacency(n, n.out, false, yield) {
				return
			}
			if g.opts.Type != Directed && !yieldAdjacency(n, n.undirected, true, yield) {
				return
			}
		}
	}
}

func yieldAdjacency(n *nodeRecord, slot *adjacency, undirected bool, yield func(AdjacencyEntry) bool) bool {
	for _, set := range slot.all() {
		for _, e := range set.edges {
			nb := e.opposite(n)
			entry := AdjacencyEntry{
				Source:           n.key,
				Target:           nb.key,
				SourceAttributes: n.attributes,
				TargetAttributes: nb.attributes,
				Edge:             e.key,
				EdgeAttributes:   e.attributes,
				Undirected:       undirected,
			}
			if !yield(entry) {
				return false
			}
		}
	}
	return true
}

// ForEachAdjacencyEntry calls fn for every adjacency entry.
func (g *Graph) ForEachAdjacencyEntry(fn func(AdjacencyEntry)) {
	for entry := range g.Adjacency() {
		fn(entry)
	}
}

// FindAdjacencyEntry returns the first adjacency entry matching pred.
func (g *Graph) FindAdjacencyEntry(pred func(AdjacencyEntry) bool) (AdjacencyEntry, bool) {
	for entry := range g.Adjacency() {
		if pred(entry) {
			return entry, true
		}
	}
	return AdjacencyEntry{}, false
}
