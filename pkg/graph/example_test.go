package graph_test

import (
	"fmt"

	"github.com/matzehuels/graphkit/pkg/graph"
)

func Example() {
	g := graph.New()
	g.AddNode("john", graph.Attributes{"age": 34})
	g.AddNode("martha", nil)
	g.AddEdgeWithKey("knows", "john", "martha", nil)

	fmt.Println(g.Order(), g.Size())
	fmt.Println(g.Neighbors("john"))
	// Output:
	// 2 1
	// [martha] <nil>
}

func ExampleGraph_MergeEdge() {
	g := graph.NewUndirected()
	res, _ := g.MergeEdge("a", "b", graph.Attributes{"weight": 1})
	fmt.Println(res.EdgeAdded, res.SourceAdded, res.TargetAdded)

	res, _ = g.MergeEdge("b", "a", graph.Attributes{"weight": 2})
	w, _ := g.GetEdgeAttribute(graph.Key(res.Key), "weight")
	fmt.Println(res.EdgeAdded, w, g.Size())
	// Output:
	// true true true
	// false 2 1
}

func ExampleGraph_Edges() {
	g := graph.New()
	g.MergeEdgeWithKey("e1", "A", "B", nil)
	g.MergeEdgeWithKey("e2", "C", "A", nil)
	g.MergeUndirectedEdgeWithKey("e3", "A", "D", nil)
	g.MergeEdgeWithKey("e4", "A", "A", nil)

	all, _ := g.Edges("A")
	out, _ := g.OutEdges("A")
	inbound, _ := g.InboundEdges("A")
	loop, _ := g.Edges("A", "A")
	fmt.Println(all)
	fmt.Println(out)
	fmt.Println(inbound)
	fmt.Println(loop)
	// Output:
	// [e2 e4 e1 e3]
	// [e1 e4]
	// [e2 e4 e3]
	// [e4]
}

func ExampleGraph_Degree() {
	g := graph.New()
	g.MergeEdge("A", "A", nil)

	deg, _ := g.Degree("A")
	in, _ := g.InDegree("A")
	out, _ := g.OutDegree("A")
	fmt.Println(deg, in, out)
	// Output: 2 1 1
}

func ExampleGraph_On() {
	g := graph.NewDirected()
	g.On(graph.EventEdgeAdded, func(ev graph.Event) {
		fmt.Printf("%s: %s -> %s\n", ev.Key, ev.Source, ev.Target)
	})
	g.MergeEdgeWithKey("dep", "app", "lib", nil)
	// Output: dep: app -> lib
}

func ExampleGraph_Inspect() {
	g := graph.NewDirected()
	g.MergeEdgeWithKey("e", "a", "b", nil)
	g.MergeEdge("b", "c", nil)
	fmt.Println(g)
	// Output:
	// DirectedGraph {order: 3, size: 2}
	//   nodes: a, b, c
	//   [e]: (a)->(b)
	//   (b)->(c)
}
