package graph

import (
	"github.com/matzehuels/graphkit/pkg/errors"
)

// MergeResult is returned by the Merge*Edge and Update*Edge methods.
type MergeResult struct {
	Key         string // Key of the merged or created edge
	EdgeAdded   bool   // The edge did not exist before
	SourceAdded bool   // The source node was created
	TargetAdded bool   // The target node was created
}

// AddEdge adds an edge of the graph's default kind (undirected in an
// undirected graph, directed otherwise) under a generated key.
//
// Validation happens before any state change, in this order: edge kind
// (Usage), self-loop policy (Usage), source then target existence
// (NotFound), duplicate edge in a simple graph (Usage).
func (g *Graph) AddEdge(source, target string, attrs Attributes) (string, error) {
	return g.addEdge("AddEdge", false, "", g.opts.Type == Undirected, source, target, attrs)
}

// AddDirectedEdge adds a directed edge under a generated key.
func (g *Graph) AddDirectedEdge(source, target string, attrs Attributes) (string, error) {
	return g.addEdge("AddDirectedEdge", false, "", false, source, target, attrs)
}

// AddUndirectedEdge adds an undirected edge under a generated key.
func (g *Graph) AddUndirectedEdge(source, target string, attrs Attributes) (string, error) {
	return g.addEdge("AddUndirectedEdge", false, "", true, source, target, attrs)
}

// AddEdgeWithKey is like [Graph.AddEdge] with an explicit key. A key
// already used by another edge is a Usage error.
func (g *Graph) AddEdgeWithKey(key, source, target string, attrs Attributes) (string, error) {
	return g.addEdge("AddEdgeWithKey", true, key, g.opts.Type == Undirected, source, target, attrs)
}

// AddDirectedEdgeWithKey adds a directed edge with an explicit key.
func (g *Graph) AddDirectedEdgeWithKey(key, source, target string, attrs Attributes) (string, error) {
	return g.addEdge("AddDirectedEdgeWithKey", true, key, false, source, target, attrs)
}

// AddUndirectedEdgeWithKey adds an undirected edge with an explicit key.
func (g *Graph) AddUndirectedEdgeWithKey(key, source, target string, attrs Attributes) (string, error) {
	return g.addEdge("AddUndirectedEdgeWithKey", true, key, true, source, target, attrs)
}

// MergeEdge adds an edge of the graph's default kind, creating missing
// endpoints, or merges attrs into the existing edge. In a simple graph the
// existing edge is the one already joining source to target; in a multi
// graph a new edge is always created.
func (g *Graph) MergeEdge(source, target string, attrs Attributes) (MergeResult, error) {
	return g.mergeEdge("MergeEdge", false, "", g.opts.Type == Undirected, source, target, attrs, nil, false)
}

// MergeDirectedEdge is [Graph.MergeEdge] for a directed edge.
func (g *Graph) MergeDirectedEdge(source, target string, attrs Attributes) (MergeResult, error) {
	return g.mergeEdge("MergeDirectedEdge", false, "", false, source, target, attrs, nil, false)
}

// MergeUndirectedEdge is [Graph.MergeEdge] for an undirected edge.
func (g *Graph) MergeUndirectedEdge(source, target string, attrs Attributes) (MergeResult, error) {
	return g.mergeEdge("MergeUndirectedEdge", false, "", true, source, target, attrs, nil, false)
}

// MergeEdgeWithKey merges into the edge with the given key, or creates it.
// An existing edge with that key must join the same endpoints (either
// orientation for undirected edges), otherwise a Usage error is returned.
func (g *Graph) MergeEdgeWithKey(key, source, target string, attrs Attributes) (MergeResult, error) {
	return g.mergeEdge("MergeEdgeWithKey", true, key, g.opts.Type == Undirected, source, target, attrs, nil, false)
}

// MergeDirectedEdgeWithKey is [Graph.MergeEdgeWithKey] for a directed edge.
func (g *Graph) MergeDirectedEdgeWithKey(key, source, target string, attrs Attributes) (MergeResult, error) {
	return g.mergeEdge("MergeDirectedEdgeWithKey", true, key, false, source, target, attrs, nil, false)
}

// MergeUndirectedEdgeWithKey is [Graph.MergeEdgeWithKey] for an undirected edge.
func (g *Graph) MergeUndirectedEdgeWithKey(key, source, target string, attrs Attributes) (MergeResult, error) {
	return g.mergeEdge("MergeUndirectedEdgeWithKey", true, key, true, source, target, attrs, nil, false)
}

// UpdateEdge behaves like [Graph.MergeEdge] but computes the attributes with
// updater: updater(current) replaces an existing edge's attributes, and
// updater(empty map) initializes a new edge. A nil updater leaves an
// existing edge untouched.
func (g *Graph) UpdateEdge(source, target string, updater func(Attributes) Attributes) (MergeResult, error) {
	return g.mergeEdge("UpdateEdge", false, "", g.opts.Type == Undirected, source, target, nil, updater, true)
}

// UpdateDirectedEdge is [Graph.UpdateEdge] for a directed edge.
func (g *Graph) UpdateDirectedEdge(source, target string, updater func(Attributes) Attributes) (MergeResult, error) {
	return g.mergeEdge("UpdateDirectedEdge", false, "", false, source, target, nil, updater, true)
}

// UpdateUndirectedEdge is [Graph.UpdateEdge] for an undirected edge.
func (g *Graph) UpdateUndirectedEdge(source, target string, updater func(Attributes) Attributes) (MergeResult, error) {
	return g.mergeEdge("UpdateUndirectedEdge", false, "", true, source, target, nil, updater, true)
}

// UpdateEdgeWithKey is [Graph.UpdateEdge] with an explicit key.
func (g *Graph) UpdateEdgeWithKey(key, source, target string, updater func(Attributes) Attributes) (MergeResult, error) {
	return g.mergeEdge("UpdateEdgeWithKey", true, key, g.opts.Type == Undirected, source, target, nil, updater, true)
}

// UpdateDirectedEdgeWithKey is [Graph.UpdateEdgeWithKey] for a directed edge.
func (g *Graph) UpdateDirectedEdgeWithKey(key, source, target string, updater func(Attributes) Attributes) (MergeResult, error) {
	return g.mergeEdge("UpdateDirectedEdgeWithKey", true, key, false, source, target, nil, updater, true)
}

// UpdateUndirectedEdgeWithKey is [Graph.UpdateEdgeWithKey] for an undirected edge.
func (g *Graph) UpdateUndirectedEdgeWithKey(key, source, target string, updater func(Attributes) Attributes) (MergeResult, error) {
	return g.mergeEdge("UpdateUndirectedEdgeWithKey", true, key, true, source, target, nil, updater, true)
}

// DropEdge removes the edge with the given key.
func (g *Graph) DropEdge(key string) error {
	e, err := g.mustEdge("DropEdge", key)
	if err != nil {
		return err
	}
	g.dropEdgeRecord(e)
	return nil
}

// DropEdgeBetween removes the edge joining source to target, looking at the
// kinds of edges the graph accepts. It is a Usage error on a multi graph.
func (g *Graph) DropEdgeBetween(source, target string) error {
	return g.dropEdgeBetween("DropEdgeBetween", g.opts.Type, source, target)
}

// DropDirectedEdge removes the directed edge from source to target.
func (g *Graph) DropDirectedEdge(source, target string) error {
	return g.dropEdgeBetween("DropDirectedEdge", Directed, source, target)
}

// DropUndirectedEdge removes the undirected edge joining source and target.
func (g *Graph) DropUndirectedEdge(source, target string) error {
	return g.dropEdgeBetween("DropUndirectedEdge", Undirected, source, target)
}

func (g *Graph) dropEdgeBetween(op string, t Type, source, target string) error {
	if !g.accepts(t) {
		return errors.Usage("%s: cannot drop a %s edge from a %s graph", op, t, g.opts.Type)
	}
	if g.opts.Multi {
		return errors.Usage("%s: cannot drop by endpoints in a multi graph since several edges may match. Drop by key instead", op)
	}
	if _, err := g.mustNode(op, source); err != nil {
		return err
	}
	if _, err := g.mustNode(op, target); err != nil {
		return err
	}
	e := g.matchingEdge(source, target, t)
	if e == nil {
		return errors.NotFound("%s: could not find a %q -> %q edge in the graph", op, source, target)
	}
	g.dropEdgeRecord(e)
	return nil
}

func (g *Graph) addEdge(op string, explicitKey bool, key string, undirected bool, source, target string, attrs Attributes) (string, error) {
	if err := g.checkEdgeKind(op, undirected); err != nil {
		return "", err
	}
	if !g.opts.AllowSelfLoops && source == target {
		return "", errors.Usage("%s: source & target are the same (%q), thus creating a loop explicitly forbidden by this graph", op, source)
	}

	src := g.node(source)
	if src == nil {
		return "", errors.NotFound("%s: source node %q not found", op, source)
	}
	tgt := g.node(target)
	if tgt == nil {
		return "", errors.NotFound("%s: target node %q not found", op, target)
	}

	if explicitKey {
		if g.edges.has(key) {
			return "", errors.Usage("%s: the %q edge already exists in the graph", op, key)
		}
	}

	if !g.opts.Multi {
		out, _ := slotsFor(undirected, src, tgt)
		if out.has(target) {
			return "", errors.Usage("%s: an edge linking %q to %q already exists. Use a multi graph to add parallel edges", op, source, target)
		}
	}

	if !explicitKey {
		key = g.generateEdgeKey()
	}
	e := g.attachEdge(key, !explicitKey, undirected, src, tgt, attrs)
	return e.key, nil
}

func (g *Graph) mergeEdge(op string, explicitKey bool, key string, undirected bool, source, target string,
	attrs Attributes, updater func(Attributes) Attributes, asUpdater bool) (MergeResult, error) {
	if err := g.checkEdgeKind(op, undirected); err != nil {
		return MergeResult{}, err
	}
	if !g.opts.AllowSelfLoops && source == target {
		return MergeResult{}, errors.Usage("%s: source & target are the same (%q), thus creating a loop explicitly forbidden by this graph", op, source)
	}

	src, tgt := g.node(source), g.node(target)

	var existing *edgeRecord
	if explicitKey {
		if e := g.edge(key); e != nil {
			sameWay := e.source.key == source && e.target.key == target
			reversed := undirected && e.source.key == target && e.target.key == source
			if e.undirected != undirected || (!sameWay && !reversed) {
				return MergeResult{}, errors.Usage("%s: inconsistency detected when attempting to merge the %q edge with %q source & %q target vs. (%q, %q)",
					op, key, source, target, e.source.key, e.target.key)
			}
			existing = e
		}
	}
	if existing == nil && !g.opts.Multi && src != nil {
		out, _ := slotsFor(undirected, src, src)
		if set, ok := out.get(target); ok {
			existing = set.first()
		}
	}

	if existing != nil {
		res := MergeResult{Key: existing.key}
		switch {
		case asUpdater && updater != nil:
			existing.attributes = ensure(updater(existing.attributes))
			g.emit(Event{
				Name:       EventEdgeAttributesUpdated,
				Key:        existing.key,
				Type:       UpdateReplace,
				Attributes: existing.attributes,
			})
		case !asUpdater && attrs != nil:
			for k, v := range attrs {
				existing.attributes[k] = v
			}
			g.emit(Event{
				Name:       EventEdgeAttributesUpdated,
				Key:        existing.key,
				Type:       UpdateMerge,
				Attributes: existing.attributes,
				Data:       attrs,
			})
		}
		return res, nil
	}

	if attrs == nil {
		attrs = Attributes{}
	}
	if asUpdater && updater != nil {
		attrs = ensure(updater(attrs))
	}

	if explicitKey {
		if g.edges.has(key) {
			return MergeResult{}, errors.Usage("%s: the %q edge already exists in the graph", op, key)
		}
	} else {
		key = g.generateEdgeKey()
	}

	res := MergeResult{Key: key, EdgeAdded: true}
	if src == nil {
		src = g.unsafeAddNode(source, Attributes{})
		res.SourceAdded = true
		if source == target {
			tgt = src
		}
	}
	if tgt == nil {
		tgt = g.unsafeAddNode(target, Attributes{})
		res.TargetAdded = true
	}

	g.attachEdge(key, !explicitKey, undirected, src, tgt, attrs)
	return res, nil
}

func (g *Graph) checkEdgeKind(op string, undirected bool) error {
	if !undirected && g.opts.Type == Undirected {
		return errors.Usage("%s: you cannot add a directed edge to an undirected graph. Use AddEdge or AddUndirectedEdge instead", op)
	}
	if undirected && g.opts.Type == Directed {
		return errors.Usage("%s: you cannot add an undirected edge to a directed graph. Use AddEdge or AddDirectedEdge instead", op)
	}
	return nil
}

// attachEdge stores a validated edge, updates counters and the structure
// index, then emits edgeAdded.
func (g *Graph) attachEdge(key string, generated, undirected bool, src, tgt *nodeRecord, attrs Attributes) *edgeRecord {
	e := &edgeRecord{
		key:        key,
		attributes: ensure(attrs),
		undirected: undirected,
		generated:  generated,
		source:     src,
		target:     tgt,
	}
	g.edges.set(key, e)

	switch {
	case src == tgt && undirected:
		src.undirectedLoops++
		g.undirectedSelfLoops++
	case src == tgt:
		src.directedLoops++
		g.directedSelfLoops++
	case undirected:
		src.undirectedDegree++
		tgt.undirectedDegree++
	default:
		src.outDegree++
		tgt.inDegree++
	}

	g.updateStructureIndex(e)

	if undirected {
		g.undirectedSize++
	} else {
		g.directedSize++
	}

	g.emit(Event{
		Name:       EventEdgeAdded,
		Key:        key,
		Source:     src.key,
		Target:     tgt.key,
		Undirected: undirected,
		Attributes: e.attributes,
	})
	return e
}

// dropEdgeRecord reverses attachEdge and emits edgeDropped.
func (g *Graph) dropEdgeRecord(e *edgeRecord) {
	g.edges.delete(e.key)

	src, tgt := e.source, e.target
	switch {
	case src == tgt && e.undirected:
		src.undirectedLoops--
		g.undirectedSelfLoops--
	case src == tgt:
		src.directedLoops--
		g.directedSelfLoops--
	case e.undirected:
		src.undirectedDegree--
		tgt.undirectedDegree--
	default:
		src.outDegree--
		tgt.inDegree--
	}

	g.clearEdgeFromStructureIndex(e)

	if e.undirected {
		g.undirectedSize--
	} else {
		g.directedSize--
	}

	g.emit(Event{
		Name:       EventEdgeDropped,
		Key:        e.key,
		Source:     src.key,
		Target:     tgt.key,
		Undirected: e.undirected,
		Attributes: e.attributes,
	})
}
