package graph

import (
	"slices"
	"testing"
)

// checkIndex verifies that the structure index and every counter agree with
// the edge registry.
func checkIndex(t *testing.T, g *Graph) {
	t.Helper()

	var directed, undirected, dLoops, uLoops int
	for key, e := range g.edges.all() {
		if e.undirected {
			undirected++
		} else {
			directed++
		}
		if e.selfLoop() && e.undirected {
			uLoops++
		} else if e.selfLoop() {
			dLoops++
		}

		out, in := slotsFor(e.undirected, e.source, e.target)
		set, ok := out.get(e.target.key)
		if !ok || !slices.Contains(set.edges, e) {
			t.Errorf("edge %s missing from %s's outgoing slot", key, e.source.key)
			continue
		}
		if e.undirected && e.selfLoop() {
			continue
		}
		mirror, ok := in.get(e.source.key)
		if !ok || mirror != set {
			t.Errorf("edge %s: endpoints do not share the same edge set", key)
		}
	}
	if g.directedSize != directed || g.undirectedSize != undirected {
		t.Errorf("sizes = (%d, %d), want (%d, %d)", g.directedSize, g.undirectedSize, directed, undirected)
	}
	if g.directedSelfLoops != dLoops || g.undirectedSelfLoops != uLoops {
		t.Errorf("self loops = (%d, %d), want (%d, %d)", g.directedSelfLoops, g.undirectedSelfLoops, dLoops, uLoops)
	}

	for key, n := range g.nodes.all() {
		count := func(slot *adjacency, self bool) int {
			total := 0
			for nb, set := range slot.all() {
				if (nb == key) == self {
					total += set.len()
				}
			}
			return total
		}
		if got := count(n.in, false); got != n.inDegree {
			t.Errorf("node %s: inDegree = %d, slots hold %d", key, n.inDegree, got)
		}
		if got := count(n.out, false); got != n.outDegree {
			t.Errorf("node %s: outDegree = %d, slots hold %d", key, n.outDegree, got)
		}
		if got := count(n.undirected, false); got != n.undirectedDegree {
			t.Errorf("node %s: undirectedDegree = %d, slots hold %d", key, n.undirectedDegree, got)
		}
		if got := count(n.out, true); got != n.directedLoops {
			t.Errorf("node %s: directedLoops = %d, slots hold %d", key, n.directedLoops, got)
		}
		if got := count(n.undirected, true); got != n.undirectedLoops {
			t.Errorf("node %s: undirectedLoops = %d, slots hold %d", key, n.undirectedLoops, got)
		}
	}
}

func TestStructureIndex(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		build func(g *Graph)
	}{
		{
			name: "simple mixed",
			opts: DefaultOptions(),
			build: func(g *Graph) {
				g.AddDirectedEdge("a", "b", nil)
				g.AddUndirectedEdge("b", "c", nil)
				g.AddDirectedEdge("c", "a", nil)
				g.AddDirectedEdge("a", "a", nil)
				g.AddUndirectedEdge("c", "c", nil)
			},
		},
		{
			name: "multi mixed",
			opts: Options{Type: Mixed, Multi: true, AllowSelfLoops: true},
			build: func(g *Graph) {
				g.AddDirectedEdge("a", "b", nil)
				g.AddDirectedEdge("a", "b", nil)
				g.AddDirectedEdge("b", "a", nil)
				g.AddUndirectedEdge("a", "b", nil)
				g.AddUndirectedEdge("b", "a", nil)
				g.AddDirectedEdge("c", "c", nil)
				g.AddDirectedEdge("c", "c", nil)
				g.AddUndirectedEdge("c", "c", nil)
			},
		},
		{
			name: "multi undirected with drops",
			opts: Options{Type: Undirected, Multi: true, AllowSelfLoops: true},
			build: func(g *Graph) {
				g.AddEdgeWithKey("x", "a", "b", nil)
				g.AddEdgeWithKey("y", "b", "a", nil)
				g.AddEdgeWithKey("z", "a", "a", nil)
				g.DropEdge("x")
				g.DropEdge("z")
			},
		},
		{
			name: "simple directed after node drop",
			opts: Options{Type: Directed, AllowSelfLoops: true},
			build: func(g *Graph) {
				g.AddEdge("a", "b", nil)
				g.AddEdge("b", "c", nil)
				g.AddEdge("c", "a", nil)
				g.AddEdge("b", "b", nil)
				g.DropNode("b")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewFromOptions(tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			for _, k := range []string{"a", "b", "c"} {
				g.AddNode(k, nil)
			}
			tt.build(g)
			checkIndex(t, g)
		})
	}
}

func TestStructureIndexUndirectedSelfLoopOnce(t *testing.T) {
	g := New()
	g.AddNode("a", nil)
	g.AddUndirectedEdgeWithKey("loop", "a", "a", nil)

	n := g.node("a")
	if n.undirected.len() != 1 {
		t.Fatalf("undirected slot has %d entries, want 1", n.undirected.len())
	}
	set, _ := n.undirected.get("a")
	if set.len() != 1 {
		t.Errorf("self-loop registered %d times, want 1", set.len())
	}
}

func TestUpgradeToMultiKeepsIndex(t *testing.T) {
	g := NewDirected()
	g.AddNode("a", nil)
	g.AddNode("b", nil)
	g.AddEdgeWithKey("e1", "a", "b", nil)

	g.UpgradeToMulti()
	if _, err := g.AddEdgeWithKey("e2", "a", "b", nil); err != nil {
		t.Fatal(err)
	}
	checkIndex(t, g)

	set, _ := g.node("a").out.get("b")
	if set.len() != 2 {
		t.Errorf("shared set has %d edges, want 2", set.len())
	}
}

func TestUpgradeToMixedAddsSlots(t *testing.T) {
	g := NewUndirected()
	g.AddNode("a", nil)
	g.AddNode("b", nil)
	g.AddEdge("a", "b", nil)

	g.UpgradeToMixed()
	n := g.node("a")
	if n.in == nil || n.out == nil || n.undirected == nil {
		t.Fatal("upgraded record is missing slots")
	}
	if n.undirectedDegree != 1 {
		t.Errorf("undirectedDegree = %d, want 1", n.undirectedDegree)
	}
	if _, err := g.AddDirectedEdge("a", "b", nil); err != nil {
		t.Fatal(err)
	}
	checkIndex(t, g)
}

func TestOrderedMapDeleteDuringIteration(t *testing.T) {
	m := newOrderedMap[int]()
	for i, k := range []string{"a", "b", "c", "d"} {
		m.set(k, i)
	}
	var seen []string
	for k := range m.all() {
		seen = append(seen, k)
		if k == "b" {
			m.delete("b")
			m.delete("c")
		}
	}
	if want := []string{"a", "b", "d"}; !slices.Equal(seen, want) {
		t.Errorf("seen = %v, want %v", seen, want)
	}
	if want := []string{"a", "d"}; !slices.Equal(m.keys(), want) {
		t.Errorf("keys = %v, want %v", m.keys(), want)
	}
}
