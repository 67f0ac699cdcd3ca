// Package graph is a mutable, in-memory graph engine.
//
// A [Graph] holds nodes and edges addressed by string keys, each carrying an
// attribute map, plus attributes on the graph itself. Its [Options] decide
// which edges it accepts:
//
//   - Type: [Mixed] (directed and undirected edges), [Directed] or [Undirected]
//   - Multi: whether parallel edges between the same nodes are allowed
//   - AllowSelfLoops: whether an edge may join a node to itself
//
// # Creating Graphs
//
//	g := graph.New()                               // mixed, simple, self-loops allowed
//	d := graph.NewDirected()                       // directed
//	m := graph.New(graph.WithMulti(true), graph.WithSelfLoops(false))
//
// # Mutation
//
// Nodes and edges are added, merged (upserted) or dropped:
//
//	g.AddNode("a", graph.Attributes{"label": "A"})
//	g.MergeNode("b", nil)
//	key, _ := g.AddEdge("a", "b", nil)              // generated key
//	g.AddUndirectedEdgeWithKey("ab", "a", "b", nil) // explicit key
//	res, _ := g.MergeEdge("b", "c", nil)            // creates "c"
//	g.DropNode("a")                                 // drops incident edges too
//
// Failures return a *[errors.Error] with code INVALID_ARGUMENTS, NOT_FOUND or
// USAGE. Validation always happens before any state change, so a failed
// call leaves the graph untouched and emits nothing.
//
// # Structure
//
// Each node keeps three adjacency slots (in, out, undirected) keyed by
// neighbor, and both endpoints of an edge share the set of edges they have
// in common. Degree counters, existence checks and edge lookups between two
// nodes are O(1).
//
// # Traversal
//
// Edges and neighbors are traversed by family, described by a [Selector]:
//
//	SelectAll         every edge
//	SelectIn          directed edges pointing at the node
//	SelectOut         directed edges leaving the node
//	SelectInbound     SelectIn plus undirected edges
//	SelectOutbound    SelectOut plus undirected edges
//	SelectDirected    directed edges
//	SelectUndirected  undirected edges
//
// Edge traversal takes zero, one or two node keys: the whole graph, the
// edges of a node, or the edges between two nodes. Every family is available
// as a snapshot ([Graph.EdgeKeys], [Graph.Edges], [Graph.InEdges], ...), a
// callback ([Graph.ForEachEdge], [Graph.FindEdge], ...) and a lazy
// [iter.Seq] ([Graph.EdgeEntries]):
//
//	seq, _ := g.EdgeEntries(graph.SelectOut, "a")
//	for e := range seq {
//	    fmt.Println(e.Edge, e.Target)
//	}
//
// # Events
//
// Mutations notify listeners synchronously. Listeners may read and mutate
// the graph:
//
//	g.On(graph.EventEdgeAdded, func(ev graph.Event) {
//	    log.Println("edge", ev.Key, ev.Source, "->", ev.Target)
//	})
//
// # Serialization
//
// [Graph.Export] and [From] convert to and from [SerializedGraph], which
// carries json and bson tags. Package io reads and writes files.
//
// # Concurrency
//
// A Graph is single-writer. Share it across goroutines only behind
// external synchronization.
package graph
