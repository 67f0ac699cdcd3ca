package graph

import (
	"github.com/matzehuels/graphkit/pkg/errors"
)

// =============================================================================
// Graph attributes
// =============================================================================

// GetAttribute returns a graph attribute, or nil if it is not set.
func (g *Graph) GetAttribute(name string) any { return g.attributes[name] }

// GetAttributes returns the live graph attribute map.
func (g *Graph) GetAttributes() Attributes { return g.attributes }

// HasAttribute reports whether the graph attribute is set.
func (g *Graph) HasAttribute(name string) bool {
	_, ok := g.attributes[name]
	return ok
}

// SetAttribute sets a graph attribute.
func (g *Graph) SetAttribute(name string, value any) {
	g.attributes[name] = value
	g.emit(Event{Name: EventAttributesUpdated, Type: UpdateSet, Attributes: g.attributes, AttrName: name})
}

// UpdateAttribute sets a graph attribute to fn(current value).
func (g *Graph) UpdateAttribute(name string, fn func(any) any) error {
	if fn == nil {
		return errors.InvalidArguments("UpdateAttribute: updater should be a function")
	}
	g.attributes[name] = fn(g.attributes[name])
	g.emit(Event{Name: EventAttributesUpdated, Type: UpdateSet, Attributes: g.attributes, AttrName: name})
	return nil
}

// RemoveAttribute deletes a graph attribute.
func (g *Graph) RemoveAttribute(name string) {
	delete(g.attributes, name)
	g.emit(Event{Name: EventAttributesUpdated, Type: UpdateRemove, Attributes: g.attributes, AttrName: name})
}

// ReplaceAttributes swaps the whole graph attribute map.
func (g *Graph) ReplaceAttributes(attrs Attributes) error {
	if attrs == nil {
		return errors.InvalidArguments("ReplaceAttributes: provided attributes are not a plain map")
	}
	g.attributes = attrs
	g.emit(Event{Name: EventAttributesUpdated, Type: UpdateReplace, Attributes: g.attributes})
	return nil
}

// MergeAttributes copies attrs into the graph attribute map.
func (g *Graph) MergeAttributes(attrs Attributes) error {
	if attrs == nil {
		return errors.InvalidArguments("MergeAttributes: provided attributes are not a plain map")
	}
	for k, v := range attrs {
		g.attributes[k] = v
	}
	g.emit(Event{Name: EventAttributesUpdated, Type: UpdateMerge, Attributes: g.attributes, Data: attrs})
	return nil
}

// UpdateAttributes replaces the graph attribute map with fn(current).
func (g *Graph) UpdateAttributes(fn func(Attributes) Attributes) error {
	if fn == nil {
		return errors.InvalidArguments("UpdateAttributes: updater should be a function")
	}
	g.attributes = ensure(fn(g.attributes))
	g.emit(Event{Name: EventAttributesUpdated, Type: UpdateReplace, Attributes: g.attributes})
	return nil
}

// =============================================================================
// Node attributes
// =============================================================================

// GetNodeAttribute returns an attribute of node, or nil if it is not set.
func (g *Graph) GetNodeAttribute(node, name string) (any, error) {
	n, err := g.mustNode("GetNodeAttribute", node)
	if err != nil {
		return nil, err
	}
	return n.attributes[name], nil
}

// GetNodeAttributes returns the live attribute map of node.
func (g *Graph) GetNodeAttributes(node string) (Attributes, error) {
	n, err := g.mustNode("GetNodeAttributes", node)
	if err != nil {
		return nil, err
	}
	return n.attributes, nil
}

// HasNodeAttribute reports whether the node attribute is set.
func (g *Graph) HasNodeAttribute(node, name string) (bool, error) {
	n, err := g.mustNode("HasNodeAttribute", node)
	if err != nil {
		return false, err
	}
	_, ok := n.attributes[name]
	return ok, nil
}

// SetNodeAttribute sets an attribute of node.
func (g *Graph) SetNodeAttribute(node, name string, value any) error {
	n, err := g.mustNode("SetNodeAttribute", node)
	if err != nil {
		return err
	}
	n.attributes[name] = value
	g.emitNodeUpdate(n, UpdateSet, name, nil)
	return nil
}

// UpdateNodeAttribute sets an attribute of node to fn(current value).
func (g *Graph) UpdateNodeAttribute(node, name string, fn func(any) any) error {
	if fn == nil {
		return errors.InvalidArguments("UpdateNodeAttribute: updater should be a function")
	}
	n, err := g.mustNode("UpdateNodeAttribute", node)
	if err != nil {
		return err
	}
	n.attributes[name] = fn(n.attributes[name])
	g.emitNodeUpdate(n, UpdateSet, name, nil)
	return nil
}

// RemoveNodeAttribute deletes an attribute of node.
func (g *Graph) RemoveNodeAttribute(node, name string) error {
	n, err := g.mustNode("RemoveNodeAttribute", node)
	if err != nil {
		return err
	}
	delete(n.attributes, name)
	g.emitNodeUpdate(n, UpdateRemove, name, nil)
	return nil
}

// ReplaceNodeAttributes swaps the attribute map of node.
func (g *Graph) ReplaceNodeAttributes(node string, attrs Attributes) error {
	n, err := g.mustNode("ReplaceNodeAttributes", node)
	if err != nil {
		return err
	}
	if attrs == nil {
		return errors.InvalidArguments("ReplaceNodeAttributes: provided attributes are not a plain map")
	}
	n.attributes = attrs
	g.emitNodeUpdate(n, UpdateReplace, "", nil)
	return nil
}

// MergeNodeAttributes copies attrs into the attribute map of node.
func (g *Graph) MergeNodeAttributes(node string, attrs Attributes) error {
	n, err := g.mustNode("MergeNodeAttributes", node)
	if err != nil {
		return err
	}
	if attrs == nil {
		return errors.InvalidArguments("MergeNodeAttributes: provided attributes are not a plain map")
	}
	for k, v := range attrs {
		n.attributes[k] = v
	}
	g.emitNodeUpdate(n, UpdateMerge, "", attrs)
	return nil
}

// UpdateNodeAttributes replaces the attribute map of node with fn(current).
func (g *Graph) UpdateNodeAttributes(node string, fn func(Attributes) Attributes) error {
	n, err := g.mustNode("UpdateNodeAttributes", node)
	if err != nil {
		return err
	}
	if fn == nil {
		return errors.InvalidArguments("UpdateNodeAttributes: updater should be a function")
	}
	n.attributes = ensure(fn(n.attributes))
	g.emitNodeUpdate(n, UpdateReplace, "", nil)
	return nil
}

// UpdateEachNodeAttributes replaces every node's attributes with
// fn(key, current) and emits a single eachNodeAttributesUpdated event.
// hints may be nil.
func (g *Graph) UpdateEachNodeAttributes(fn func(key string, attrs Attributes) Attributes, hints *Hints) error {
	if fn == nil {
		return errors.InvalidArguments("UpdateEachNodeAttributes: expecting an updater function")
	}
	for key, n := range g.nodes.all() {
		n.attributes = ensure(fn(key, n.attributes))
	}
	g.emit(Event{Name: EventEachNodeAttributesUpdated, Hints: hints})
	return nil
}

func (g *Graph) emitNodeUpdate(n *nodeRecord, t UpdateType, name string, data Attributes) {
	g.emit(Event{
		Name:       EventNodeAttributesUpdated,
		Key:        n.key,
		Type:       t,
		Attributes: n.attributes,
		AttrName:   name,
		Data:       data,
	})
}

// =============================================================================
// Edge attributes
// =============================================================================

// EdgeRef addresses an edge either by key or by its endpoints, optionally
// restricted to one kind of edge.
//
//	g.GetEdgeAttribute(graph.Key("e1"), "weight")
//	g.SetEdgeAttribute(graph.Between("a", "b").Undirected(), "weight", 2)
//
// Addressing by endpoints is a Usage error on multi graphs. Restricting to
// a kind the graph cannot hold is a Usage error. A key naming an edge of
// the other kind is a NotFound error.
type EdgeRef struct {
	key    string
	source string
	target string
	byPair bool
	kind   Type
}

// Key addresses the edge with the given key.
func Key(key string) EdgeRef { return EdgeRef{key: key} }

// Between addresses the edge going from source to target.
func Between(source, target string) EdgeRef {
	return EdgeRef{source: source, target: target, byPair: true}
}

// Directed restricts r to directed edges.
func (r EdgeRef) Directed() EdgeRef {
	r.kind = Directed
	return r
}

// Undirected restricts r to undirected edges.
func (r EdgeRef) Undirected() EdgeRef {
	r.kind = Undirected
	return r
}

// String returns the key, or "source->target" for endpoint references.
func (r EdgeRef) String() string {
	if r.byPair {
		return r.source + "->" + r.target
	}
	return r.key
}

// resolveEdge finds the edge addressed by ref. Extra checks run once the
// edge is known to exist, before the kind restriction is applied.
func (g *Graph) resolveEdge(op string, ref EdgeRef, checks ...func() error) (*edgeRecord, error) {
	if !g.accepts(ref.kind) {
		return nil, errors.Usage("%s: cannot find this type of edge in your %s graph", op, g.opts.Type)
	}

	var e *edgeRecord
	if ref.byPair {
		if g.opts.Multi {
			return nil, errors.Usage("%s: cannot use a source/target pair on a multi graph since several edges may match", op)
		}
		if e = g.matchingEdge(ref.source, ref.target, ref.kind); e == nil {
			return nil, errors.NotFound("%s: could not find an edge for the given path (%q, %q)", op, ref.source, ref.target)
		}
	} else {
		if e = g.edge(ref.key); e == nil {
			return nil, errors.NotFound("%s: could not find the %q edge in the graph", op, ref.key)
		}
	}

	for _, check := range checks {
		if err := check(); err != nil {
			return nil, err
		}
	}
	if ref.kind != Mixed && e.undirected != (ref.kind == Undirected) {
		return nil, errors.NotFound("%s: could not find the %q %s edge in the graph", op, ref, ref.kind)
	}
	return e, nil
}

// GetEdgeAttribute returns an attribute of the edge, or nil if it is not set.
func (g *Graph) GetEdgeAttribute(ref EdgeRef, name string) (any, error) {
	e, err := g.resolveEdge("GetEdgeAttribute", ref)
	if err != nil {
		return nil, err
	}
	return e.attributes[name], nil
}

// GetEdgeAttributes returns the live attribute map of the edge.
func (g *Graph) GetEdgeAttributes(ref EdgeRef) (Attributes, error) {
	e, err := g.resolveEdge("GetEdgeAttributes", ref)
	if err != nil {
		return nil, err
	}
	return e.attributes, nil
}

// HasEdgeAttribute reports whether the edge attribute is set.
func (g *Graph) HasEdgeAttribute(ref EdgeRef, name string) (bool, error) {
	e, err := g.resolveEdge("HasEdgeAttribute", ref)
	if err != nil {
		return false, err
	}
	_, ok := e.attributes[name]
	return ok, nil
}

// SetEdgeAttribute sets an attribute of the edge.
func (g *Graph) SetEdgeAttribute(ref EdgeRef, name string, value any) error {
	e, err := g.resolveEdge("SetEdgeAttribute", ref)
	if err != nil {
		return err
	}
	e.attributes[name] = value
	g.emitEdgeUpdate(e, UpdateSet, name, nil)
	return nil
}

// UpdateEdgeAttribute sets an attribute of the edge to fn(current value).
func (g *Graph) UpdateEdgeAttribute(ref EdgeRef, name string, fn func(any) any) error {
	if fn == nil {
		return errors.InvalidArguments("UpdateEdgeAttribute: updater should be a function")
	}
	e, err := g.resolveEdge("UpdateEdgeAttribute", ref)
	if err != nil {
		return err
	}
	e.attributes[name] = fn(e.attributes[name])
	g.emitEdgeUpdate(e, UpdateSet, name, nil)
	return nil
}

// RemoveEdgeAttribute deletes an attribute of the edge.
func (g *Graph) RemoveEdgeAttribute(ref EdgeRef, name string) error {
	e, err := g.resolveEdge("RemoveEdgeAttribute", ref)
	if err != nil {
		return err
	}
	delete(e.attributes, name)
	g.emitEdgeUpdate(e, UpdateRemove, name, nil)
	return nil
}

// ReplaceEdgeAttributes swaps the attribute map of the edge.
func (g *Graph) ReplaceEdgeAttributes(ref EdgeRef, attrs Attributes) error {
	e, err := g.resolveEdge("ReplaceEdgeAttributes", ref, func() error {
		if attrs == nil {
			return errors.InvalidArguments("ReplaceEdgeAttributes: provided attributes are not a plain map")
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.attributes = attrs
	g.emitEdgeUpdate(e, UpdateReplace, "", nil)
	return nil
}

// MergeEdgeAttributes copies attrs into the attribute map of the edge.
func (g *Graph) MergeEdgeAttributes(ref EdgeRef, attrs Attributes) error {
	e, err := g.resolveEdge("MergeEdgeAttributes", ref, func() error {
		if attrs == nil {
			return errors.InvalidArguments("MergeEdgeAttributes: provided attributes are not a plain map")
		}
		return nil
	})
	if err != nil {
		return err
	}
	for k, v := range attrs {
		e.attributes[k] = v
	}
	g.emitEdgeUpdate(e, UpdateMerge, "", attrs)
	return nil
}

// UpdateEdgeAttributes replaces the attribute map of the edge with fn(current).
func (g *Graph) UpdateEdgeAttributes(ref EdgeRef, fn func(Attributes) Attributes) error {
	e, err := g.resolveEdge("UpdateEdgeAttributes", ref)
	if err != nil {
		return err
	}
	if fn == nil {
		return errors.InvalidArguments("UpdateEdgeAttributes: updater should be a function")
	}
	e.attributes = ensure(fn(e.attributes))
	g.emitEdgeUpdate(e, UpdateReplace, "", nil)
	return nil
}

// UpdateEachEdgeAttributes replaces every edge's attributes with
// fn(key, current) and emits a single eachEdgeAttributesUpdated event.
// hints may be nil.
func (g *Graph) UpdateEachEdgeAttributes(fn func(key string, attrs Attributes) Attributes, hints *Hints) error {
	if fn == nil {
		return errors.InvalidArguments("UpdateEachEdgeAttributes: expecting an updater function")
	}
	for key, e := range g.edges.all() {
		e.attributes = ensure(fn(key, e.attributes))
	}
	g.emit(Event{Name: EventEachEdgeAttributesUpdated, Hints: hints})
	return nil
}

func (g *Graph) emitEdgeUpdate(e *edgeRecord, t UpdateType, name string, data Attributes) {
	g.emit(Event{
		Name:       EventEdgeAttributesUpdated,
		Key:        e.key,
		Type:       t,
		Attributes: e.attributes,
		AttrName:   name,
		Data:       data,
	})
}
