// Package pkg provides the graphkit libraries.
//
// # Overview
//
// graphkit is an in-memory graph engine with a small toolbox around it.
// Graphs are directed, undirected or mixed, may allow parallel edges and
// self-loops, and carry arbitrary attributes on the graph, its nodes and
// its edges. Every mutation emits an event. The pkg directory is organized
// into:
//
//  1. [graph] - the graph data structure, traversal, events and serialization
//  2. [io] - JSON, BSON and YAML codecs for serialized graphs
//  3. [render] - node-link diagrams through Graphviz
//  4. [cache] - render cache backends (file, Redis, null)
//  5. [publish] - forwarding graph events to Redis pub/sub
//  6. [server] - read-only HTTP API over a graph
//  7. [errors], [observability], [buildinfo] - shared infrastructure
//
// # Data Flow
//
//	JSON/BSON/YAML file
//	      ↓
//	 [io] package (decode + validate)
//	      ↓
//	 [graph] package (query, mutate, emit events)
//	      ↓
//	 [render], [server], [publish]
//
// # Quick Start
//
//	g := graph.New()
//	g.AddNode("app", graph.Attributes{"version": "1.0"})
//	g.AddNode("lib", nil)
//	g.AddDirectedEdge("app", "lib", nil)
//
//	if err := io.Export(ctx, g, "deps.json"); err != nil {
//	    log.Fatal(err)
//	}
package pkg
