package graph

import (
	"github.com/matzehuels/graphkit/pkg/errors"
)

// HasNode reports whether a node with the given key exists.
func (g *Graph) HasNode(key string) bool { return g.nodes.has(key) }

// AddNode adds a node and returns its key. A nil attrs map is stored as an
// empty one. It returns a Usage error if the node already exists.
func (g *Graph) AddNode(key string, attrs Attributes) (string, error) {
	if g.nodes.has(key) {
		return "", errors.Usage("AddNode: the %q node already exists in the graph", key)
	}
	g.unsafeAddNode(key, attrs)
	return key, nil
}

// MergeNode adds the node if it is missing, or merges attrs into the
// existing node's attributes. It reports whether the node was added.
func (g *Graph) MergeNode(key string, attrs Attributes) (string, bool) {
	if n := g.node(key); n != nil {
		if attrs != nil {
			for k, v := range attrs {
				n.attributes[k] = v
			}
			g.emit(Event{
				Name:       EventNodeAttributesUpdated,
				Key:        key,
				Type:       UpdateMerge,
				Attributes: n.attributes,
				Data:       attrs,
			})
		}
		return key, false
	}
	g.unsafeAddNode(key, attrs)
	return key, true
}

// UpdateNode adds the node with updater(empty map) as attributes if it is
// missing, or replaces the existing node's attributes with updater(current).
// A nil updater leaves an existing node untouched. It reports whether the
// node was added.
func (g *Graph) UpdateNode(key string, updater func(Attributes) Attributes) (string, bool) {
	if n := g.node(key); n != nil {
		if updater != nil {
			n.attributes = ensure(updater(n.attributes))
			g.emit(Event{
				Name:       EventNodeAttributesUpdated,
				Key:        key,
				Type:       UpdateReplace,
				Attributes: n.attributes,
			})
		}
		return key, false
	}
	attrs := Attributes{}
	if updater != nil {
		attrs = updater(attrs)
	}
	g.unsafeAddNode(key, attrs)
	return key, true
}

// DropNode removes the node and every edge attached to it. Incident edges
// are dropped one by one first, each emitting edgeDropped, then nodeDropped
// is emitted. It returns a NotFound error for a missing node.
func (g *Graph) DropNode(key string) error {
	n, err := g.mustNode("DropNode", key)
	if err != nil {
		return err
	}

	var incident []*edgeRecord
	for e := range g.nodeEdges(n, g.opts.Type, DirNone) {
		incident = append(incident, e)
	}
	for _, e := range incident {
		// A listener may already have dropped it.
		if cur := g.edge(e.key); cur == e {
			g.dropEdgeRecord(e)
		}
	}
	// Or the node itself.
	if g.node(key) != n {
		return nil
	}

	g.nodes.delete(key)
	g.emit(Event{Name: EventNodeDropped, Key: key, Attributes: n.attributes})
	return nil
}

// unsafeAddNode inserts a node without checking for an existing one.
func (g *Graph) unsafeAddNode(key string, attrs Attributes) *nodeRecord {
	n := newNodeRecord(g.opts.Type, key, attrs)
	g.nodes.set(key, n)
	g.emit(Event{Name: EventNodeAdded, Key: key, Attributes: n.attributes})
	return n
}

func ensure(attrs Attributes) Attributes {
	if attrs == nil {
		return Attributes{}
	}
	return attrs
}
