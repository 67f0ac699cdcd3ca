package graph

import (
	"github.com/matzehuels/graphkit/pkg/errors"
)

// HasEdge reports whether an edge with the given key exists.
func (g *Graph) HasEdge(key string) bool { return g.edges.has(key) }

// HasDirectedEdge reports whether a directed edge with the given key exists.
func (g *Graph) HasDirectedEdge(key string) bool {
	e := g.edge(key)
	return e != nil && !e.undirected
}

// HasUndirectedEdge reports whether an undirected edge with the given key exists.
func (g *Graph) HasUndirectedEdge(key string) bool {
	e := g.edge(key)
	return e != nil && e.undirected
}

// HasEdgeBetween reports whether a directed edge goes from source to target
// or an undirected edge joins them. Missing nodes yield false.
func (g *Graph) HasEdgeBetween(source, target string) bool {
	return g.matchingEdge(source, target, Mixed) != nil
}

// HasDirectedEdgeBetween reports whether a directed edge goes from source
// to target.
func (g *Graph) HasDirectedEdgeBetween(source, target string) bool {
	if g.opts.Type == Undirected {
		return false
	}
	return g.matchingEdge(source, target, Directed) != nil
}

// HasUndirectedEdgeBetween reports whether an undirected edge joins source
// and target.
func (g *Graph) HasUndirectedEdgeBetween(source, target string) bool {
	if g.opts.Type == Directed {
		return false
	}
	return g.matchingEdge(source, target, Undirected) != nil
}

// Edge returns the key of the edge going from source to target (directed
// first, then undirected) and whether one exists. Missing endpoints are a
// NotFound error; calling it on a multi graph is a Usage error.
func (g *Graph) Edge(source, target string) (string, bool, error) {
	return g.edgeBetween("Edge", Mixed, source, target)
}

// DirectedEdge is [Graph.Edge] restricted to directed edges.
func (g *Graph) DirectedEdge(source, target string) (string, bool, error) {
	return g.edgeBetween("DirectedEdge", Directed, source, target)
}

// UndirectedEdge is [Graph.Edge] restricted to undirected edges.
func (g *Graph) UndirectedEdge(source, target string) (string, bool, error) {
	return g.edgeBetween("UndirectedEdge", Undirected, source, target)
}

func (g *Graph) edgeBetween(op string, t Type, source, target string) (string, bool, error) {
	if !g.accepts(t) {
		return "", false, nil
	}
	if g.opts.Multi {
		return "", false, errors.Usage("%s: this method is irrelevant with multi graphs since there might be multiple edges between source & target. See Edges instead", op)
	}
	if _, err := g.mustNode(op, source); err != nil {
		return "", false, err
	}
	if _, err := g.mustNode(op, target); err != nil {
		return "", false, err
	}
	e := g.matchingEdge(source, target, t)
	if e == nil {
		return "", false, nil
	}
	return e.key, true, nil
}

// Source returns the source node of an edge.
func (g *Graph) Source(edge string) (string, error) {
	e, err := g.mustEdge("Source", edge)
	if err != nil {
		return "", err
	}
	return e.source.key, nil
}

// Target returns the target node of an edge.
func (g *Graph) Target(edge string) (string, error) {
	e, err := g.mustEdge("Target", edge)
	if err != nil {
		return "", err
	}
	return e.target.key, nil
}

// Extremities returns both endpoints of an edge.
func (g *Graph) Extremities(edge string) (source, target string, err error) {
	e, err := g.mustEdge("Extremities", edge)
	if err != nil {
		return "", "", err
	}
	return e.source.key, e.target.key, nil
}

// Opposite returns the endpoint of edge that is not node. It is a NotFound
// error if the edge is missing or node is not one of its endpoints.
func (g *Graph) Opposite(node, edge string) (string, error) {
	e, err := g.mustEdge("Opposite", edge)
	if err != nil {
		return "", err
	}
	switch node {
	case e.source.key:
		return e.target.key, nil
	case e.target.key:
		return e.source.key, nil
	}
	return "", errors.NotFound("Opposite: the %q node is not attached to the %q edge (%s, %s)", node, edge, e.source.key, e.target.key)
}

// HasExtremity reports whether node is one of the edge's endpoints.
func (g *Graph) HasExtremity(edge, node string) (bool, error) {
	e, err := g.mustEdge("HasExtremity", edge)
	if err != nil {
		return false, err
	}
	return e.source.key == node || e.target.key == node, nil
}

// IsDirected reports whether the edge is directed.
func (g *Graph) IsDirected(edge string) (bool, error) {
	e, err := g.mustEdge("IsDirected", edge)
	if err != nil {
		return false, err
	}
	return !e.undirected, nil
}

// IsUndirected reports whether the edge is undirected.
func (g *Graph) IsUndirected(edge string) (bool, error) {
	e, err := g.mustEdge("IsUndirected", edge)
	if err != nil {
		return false, err
	}
	return e.undirected, nil
}

// IsSelfLoop reports whether the edge's source equals its target.
func (g *Graph) IsSelfLoop(edge string) (bool, error) {
	e, err := g.mustEdge("IsSelfLoop", edge)
	if err != nil {
		return false, err
	}
	return e.selfLoop(), nil
}

// AreNeighbors reports whether any edge joins node and neighbor, in any
// orientation. A missing node is a NotFound error; a missing neighbor is
// simply not a neighbor.
func (g *Graph) AreNeighbors(node, neighbor string) (bool, error) {
	return g.areNeighbors("AreNeighbors", SelectAll, node, neighbor)
}

// AreInNeighbors reports whether a directed edge goes from neighbor to node.
func (g *Graph) AreInNeighbors(node, neighbor string) (bool, error) {
	return g.areNeighbors("AreInNeighbors", SelectIn, node, neighbor)
}

// AreOutNeighbors reports whether a directed edge goes from node to neighbor.
func (g *Graph) AreOutNeighbors(node, neighbor string) (bool, error) {
	return g.areNeighbors("AreOutNeighbors", SelectOut, node, neighbor)
}

// AreInboundNeighbors reports whether neighbor is an in-neighbor or an
// undirected neighbor of node.
func (g *Graph) AreInboundNeighbors(node, neighbor string) (bool, error) {
	return g.areNeighbors("AreInboundNeighbors", SelectInbound, node, neighbor)
}

// AreOutboundNeighbors reports whether neighbor is an out-neighbor or an
// undirected neighbor of node.
func (g *Graph) AreOutboundNeighbors(node, neighbor string) (bool, error) {
	return g.areNeighbors("AreOutboundNeighbors", SelectOutbound, node, neighbor)
}

// AreDirectedNeighbors reports whether a directed edge joins the two nodes.
func (g *Graph) AreDirectedNeighbors(node, neighbor string) (bool, error) {
	return g.areNeighbors("AreDirectedNeighbors", SelectDirected, node, neighbor)
}

// AreUndirectedNeighbors reports whether an undirected edge joins the two nodes.
func (g *Graph) AreUndirectedNeighbors(node, neighbor string) (bool, error) {
	return g.areNeighbors("AreUndirectedNeighbors", SelectUndirected, node, neighbor)
}

func (g *Graph) areNeighbors(op string, sel Selector, node, neighbor string) (bool, error) {
	n, err := g.mustNode(op, node)
	if err != nil {
		return false, err
	}
	if !g.accepts(sel.Type) {
		return false, nil
	}
	t := g.effectiveType(sel.Type)
	if t != Undirected {
		if sel.Direction != DirOut && n.in.has(neighbor) {
			return true, nil
		}
		if sel.Direction != DirIn && n.out.has(neighbor) {
			return true, nil
		}
	}
	if t != Directed && n.undirected.has(neighbor) {
		return true, nil
	}
	return false, nil
}

// effectiveType narrows a Mixed query to the graph's own type.
func (g *Graph) effectiveType(t Type) Type {
	if t == Mixed {
		return g.opts.Type
	}
	return t
}
