package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/graphkit/pkg/graph"
	"github.com/matzehuels/graphkit/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := graph.NewDirected()
	g.AddNode("app", nil)
	g.AddNode("lib", nil)
	g.AddEdge("app", "lib", nil)

	fmt.Print(nodelink.ToDOT(g, nodelink.Options{RankDir: "LR"}))
	// Output:
	// digraph G {
	//   rankdir=LR;
	//   bgcolor="transparent";
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"];
	//   ranksep=0.5;
	//   nodesep=0.3;
	//
	//   "app" [label="app"];
	//   "lib" [label="lib"];
	//
	//   "app" -> "lib";
	// }
}
