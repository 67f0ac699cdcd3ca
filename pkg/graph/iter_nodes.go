package graph

import "iter"

// Nodes returns every node key in insertion order.
func (g *Graph) Nodes() []string { return g.nodes.keys() }

// NodeEntries returns a lazy sequence of node keys and their live
// attribute maps, in insertion order.
func (g *Graph) NodeEntries() iter.Seq2[string, Attributes] {
	return func(yield func(string, Attributes) bool) {
		for key, n := range g.nodes.all() {
			if !yield(key, n.attributes) {
				return
			}
		}
	}
}

// ForEachNode calls fn for every node.
func (g *Graph) ForEachNode(fn func(key string, attrs Attributes)) {
	for key, attrs := range g.NodeEntries() {
		fn(key, attrs)
	}
}

// ForEachNodeUntil calls fn for every node until fn returns true. It
// reports whether iteration was stopped.
func (g *Graph) ForEachNodeUntil(fn func(key string, attrs Attributes) bool) bool {
	_, found := g.FindNode(fn)
	return found
}

// FindNode returns the first node matching pred.
func (g *Graph) FindNode(pred func(key string, attrs Attributes) bool) (string, bool) {
	for key, attrs := range g.NodeEntries() {
		if pred(key, attrs) {
			return key, true
		}
	}
	return "", false
}

// FilterNodes returns the nodes matching pred.
func (g *Graph) FilterNodes(pred func(key string, attrs Attributes) bool) []string {
	keys := []string{}
	for key, attrs := range g.NodeEntries() {
		if pred(key, attrs) {
			keys = append(keys, key)
		}
	}
	return keys
}

// SomeNode reports whether any node matches pred.
func (g *Graph) SomeNode(pred func(key string, attrs Attributes) bool) bool {
	_, found := g.FindNode(pred)
	return found
}

// EveryNode reports whether every node matches pred.
func (g *Graph) EveryNode(pred func(key string, attrs Attributes) bool) bool {
	_, found := g.FindNode(func(key string, attrs Attributes) bool { return !pred(key, attrs) })
	return !found
}

// MapNodes returns fn applied to every node.
func MapNodes[T any](g *Graph, fn func(key string, attrs Attributes) T) []T {
	out := make([]T, 0, g.Order())
	for key, attrs := range g.NodeEntries() {
		out = append(out, fn(key, attrs))
	}
	return out
}

// ReduceNodes folds fn over every node, starting from initial.
func ReduceNodes[T any](g *Graph, fn func(acc T, key string, attrs Attributes) T, initial T) T {
	acc := initial
	for key, attrs := range g.NodeEntries() {
		acc = fn(acc, key, attrs)
	}
	return acc
}
