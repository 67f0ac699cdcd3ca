package graph

import (
	"github.com/matzehuels/graphkit/pkg/errors"
)

// Graph is a mutable in-memory graph with attributes on its nodes, its
// edges and itself. Depending on its [Options] it accepts directed edges,
// undirected edges or both, parallel edges and self-loops.
//
// Nodes and edges are addressed by string keys and iterated in insertion
// order. Every mutation emits a change event, see [Graph.On].
//
// The zero value is not usable - use [New] to create a graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	opts       Options
	attributes Attributes

	nodes *orderedMap[*nodeRecord]
	edges *orderedMap[*edgeRecord]

	directedSize        int
	undirectedSize      int
	directedSelfLoops   int
	undirectedSelfLoops int

	keys   *keyGenerator
	events emitter
}

// New creates an empty graph. Without options the graph is mixed, simple
// and allows self-loops. New panics if the options name an unknown Type;
// use [NewFromOptions] to get an error instead.
func New(opts ...Option) *Graph {
	g, err := NewFromOptions(resolveOptions(DefaultOptions(), opts))
	if err != nil {
		panic(err)
	}
	return g
}

// NewFromOptions creates an empty graph, returning an InvalidArguments
// error for invalid options.
func NewFromOptions(opts Options) (*Graph, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Graph{
		opts:       opts,
		attributes: Attributes{},
		nodes:      newOrderedMap[*nodeRecord](),
		edges:      newOrderedMap[*edgeRecord](),
		keys:       newKeyGenerator(),
	}, nil
}

// NewDirected creates a directed graph.
func NewDirected(opts ...Option) *Graph {
	return New(append(opts, WithType(Directed))...)
}

// NewUndirected creates an undirected graph.
func NewUndirected(opts ...Option) *Graph {
	return New(append(opts, WithType(Undirected))...)
}

// NewMulti creates a mixed multi graph.
func NewMulti(opts ...Option) *Graph {
	return New(append(opts, WithMulti(true))...)
}

// NewMultiDirected creates a directed multi graph.
func NewMultiDirected(opts ...Option) *Graph {
	return New(append(opts, WithType(Directed), WithMulti(true))...)
}

// NewMultiUndirected creates an undirected multi graph.
func NewMultiUndirected(opts ...Option) *Graph {
	return New(append(opts, WithType(Undirected), WithMulti(true))...)
}

// Options returns the graph's current options.
func (g *Graph) Options() Options { return g.opts }

// Type returns the graph type.
func (g *Graph) Type() Type { return g.opts.Type }

// Multi reports whether parallel edges are allowed.
func (g *Graph) Multi() bool { return g.opts.Multi }

// AllowSelfLoops reports whether self-loops are allowed.
func (g *Graph) AllowSelfLoops() bool { return g.opts.AllowSelfLoops }

// Order returns the number of nodes.
func (g *Graph) Order() int { return g.nodes.len() }

// Size returns the number of edges.
func (g *Graph) Size() int { return g.edges.len() }

// DirectedSize returns the number of directed edges.
func (g *Graph) DirectedSize() int { return g.directedSize }

// UndirectedSize returns the number of undirected edges.
func (g *Graph) UndirectedSize() int { return g.undirectedSize }

// SelfLoopCount returns the number of self-loops of either kind.
func (g *Graph) SelfLoopCount() int { return g.directedSelfLoops + g.undirectedSelfLoops }

// DirectedSelfLoopCount returns the number of directed self-loops.
func (g *Graph) DirectedSelfLoopCount() int { return g.directedSelfLoops }

// UndirectedSelfLoopCount returns the number of undirected self-loops.
func (g *Graph) UndirectedSelfLoopCount() int { return g.undirectedSelfLoops }

// Clear removes every node and edge. Graph attributes are kept.
// It emits a single cleared event.
func (g *Graph) Clear() {
	g.edges.clear()
	g.nodes.clear()
	g.resetCounters()
	g.emit(Event{Name: EventCleared})
}

// ClearEdges removes every edge and keeps the nodes.
// It emits a single edgesCleared event.
func (g *Graph) ClearEdges() {
	g.clearStructureIndex()
	g.edges.clear()
	g.resetCounters()
	g.emit(Event{Name: EventEdgesCleared})
}

func (g *Graph) resetCounters() {
	g.directedSize, g.undirectedSize = 0, 0
	g.directedSelfLoops, g.undirectedSelfLoops = 0, 0
}

func (g *Graph) node(key string) *nodeRecord {
	n, _ := g.nodes.get(key)
	return n
}

func (g *Graph) edge(key string) *edgeRecord {
	e, _ := g.edges.get(key)
	return e
}

func (g *Graph) mustNode(op, key string) (*nodeRecord, error) {
	n := g.node(key)
	if n == nil {
		return nil, errors.NotFound("%s: could not find the %q node in the graph", op, key)
	}
	return n, nil
}

func (g *Graph) mustEdge(op, key string) (*edgeRecord, error) {
	e := g.edge(key)
	if e == nil {
		return nil, errors.NotFound("%s: could not find the %q edge in the graph", op, key)
	}
	return e, nil
}

// accepts reports whether a query restricted to t can match anything in g.
func (g *Graph) accepts(t Type) bool {
	return t == Mixed || g.opts.Type == Mixed || t == g.opts.Type
}

// matchingEdge returns the first edge from source to target among the
// kinds allowed by t: out[target] then undirected[target].
func (g *Graph) matchingEdge(source, target string, t Type) *edgeRecord {
	src := g.node(source)
	if src == nil {
		return nil
	}
	if t != Undirected {
		if set, ok := src.out.get(target); ok {
			return set.first()
		}
	}
	if t != Directed {
		if set, ok := src.undirected.get(target); ok {
			return set.first()
		}
	}
	return nil
}
