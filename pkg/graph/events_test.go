package graph_test

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphkit/pkg/graph"
)

func TestEventPayloads(t *testing.T) {
	g := graph.New()

	var got []graph.Event
	g.OnAll(func(ev graph.Event) { got = append(got, ev) })

	g.AddNode("A", graph.Attributes{"x": 1})
	g.AddNode("B", nil)
	g.AddUndirectedEdgeWithKey("ab", "A", "B", graph.Attributes{"w": 2})
	g.SetNodeAttribute("A", "x", 5)
	g.DropEdge("ab")

	want := []graph.EventName{
		graph.EventNodeAdded,
		graph.EventNodeAdded,
		graph.EventEdgeAdded,
		graph.EventNodeAttributesUpdated,
		graph.EventEdgeDropped,
	}
	var names []graph.EventName
	for _, ev := range got {
		names = append(names, ev.Name)
	}
	if !slices.Equal(names, want) {
		t.Fatalf("events = %v, want %v", names, want)
	}

	if got[0].Key != "A" || got[0].Attributes["x"] != 1 {
		t.Errorf("nodeAdded = %+v", got[0])
	}
	added := got[2]
	if added.Key != "ab" || added.Source != "A" || added.Target != "B" || !added.Undirected || added.Attributes["w"] != 2 {
		t.Errorf("edgeAdded = %+v", added)
	}
	upd := got[3]
	if upd.Key != "A" || upd.Type != graph.UpdateSet || upd.AttrName != "x" || upd.Attributes["x"] != 5 {
		t.Errorf("nodeAttributesUpdated = %+v", upd)
	}
}

func TestOnceAndOff(t *testing.T) {
	g := graph.New()

	var once, always int
	g.Once(graph.EventNodeAdded, func(graph.Event) { once++ })
	id := g.On(graph.EventNodeAdded, func(graph.Event) { always++ })

	g.AddNode("A", nil)
	g.AddNode("B", nil)
	if once != 1 || always != 2 {
		t.Errorf("once=%d always=%d, want 1 and 2", once, always)
	}

	if !g.Off(id) {
		t.Error("Off should find the registration")
	}
	if g.Off(id) {
		t.Error("second Off should report false")
	}
	g.AddNode("C", nil)
	if always != 2 {
		t.Errorf("listener called after Off: %d", always)
	}
	if n := g.ListenerCount(graph.EventNodeAdded); n != 0 {
		t.Errorf("ListenerCount = %d, want 0", n)
	}
}

func TestOnAllDetach(t *testing.T) {
	g := graph.New()
	var n int
	off := g.OnAll(func(graph.Event) { n++ })
	if c := g.ListenerCount(graph.EventCleared); c != 1 {
		t.Errorf("ListenerCount(cleared) = %d", c)
	}
	g.AddNode("A", nil)
	off()
	g.Clear()
	if n != 1 {
		t.Errorf("got %d events, want 1", n)
	}
}

func TestRemoveAllListeners(t *testing.T) {
	g := graph.New()
	var nodes, edges int
	g.On(graph.EventNodeAdded, func(graph.Event) { nodes++ })
	g.On(graph.EventEdgeAdded, func(graph.Event) { edges++ })

	g.RemoveAllListeners(graph.EventNodeAdded)
	g.MergeEdge("A", "B", nil)
	if nodes != 0 || edges != 1 {
		t.Errorf("nodes=%d edges=%d", nodes, edges)
	}

	g.RemoveAllListeners()
	g.MergeEdge("B", "C", nil)
	if edges != 1 {
		t.Errorf("edges=%d after removing everything", edges)
	}
}

func TestListenerMutatesGraph(t *testing.T) {
	g := graph.New()

	// Every new node gets linked to a hub.
	g.On(graph.EventNodeAdded, func(ev graph.Event) {
		if ev.Key == "hub" {
			return
		}
		g.MergeNode("hub", nil)
		g.MergeEdge(ev.Key, "hub", nil)
	})

	g.AddNode("A", nil)
	g.AddNode("B", nil)

	if g.Order() != 3 || g.Size() != 2 {
		t.Errorf("order/size = %d/%d, want 3/2", g.Order(), g.Size())
	}
	if d, _ := g.InDegree("hub"); d != 2 {
		t.Errorf("InDegree(hub) = %d, want 2", d)
	}
}

func TestListenerDropsNodeDuringCascade(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b", nil)
	g.AddEdge("a", "c", nil)

	var nested error
	once := false
	g.On(graph.EventEdgeDropped, func(graph.Event) {
		if !once {
			once = true
			nested = g.DropNode("a")
		}
	})
	var dropped []string
	g.On(graph.EventNodeDropped, func(ev graph.Event) { dropped = append(dropped, ev.Key) })

	if err := g.DropNode("a"); err != nil {
		t.Fatal(err)
	}
	if nested != nil {
		t.Fatalf("nested DropNode: %v", nested)
	}
	if len(dropped) != 1 || dropped[0] != "a" {
		t.Errorf("nodeDropped events = %v, want [a]", dropped)
	}
	if g.Order() != 2 || g.Size() != 0 || g.HasNode("a") {
		t.Errorf("order/size = %d/%d, nodes = %v", g.Order(), g.Size(), g.Nodes())
	}
}

func TestListenerReaddsNodeDuringCascade(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b", nil)

	g.On(graph.EventEdgeDropped, func(graph.Event) {
		g.DropNode("a")
		g.AddNode("a", graph.Attributes{"fresh": true})
	})

	if err := g.DropNode("a"); err != nil {
		t.Fatal(err)
	}
	if v, _ := g.GetNodeAttribute("a", "fresh"); v != true {
		t.Error("outer DropNode removed the node re-added by a listener")
	}
}

func TestListenerAddedDuringEmit(t *testing.T) {
	g := graph.New()
	var late int
	g.On(graph.EventNodeAdded, func(graph.Event) {
		if late == 0 {
			g.On(graph.EventNodeAdded, func(graph.Event) { late++ })
		}
	})

	g.AddNode("A", nil)
	if late != 0 {
		t.Error("a listener registered during emission must not see the current event")
	}
	g.AddNode("B", nil)
	if late != 1 {
		t.Errorf("late = %d, want 1", late)
	}
}

func TestLogEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	g := graph.New()
	detach := graph.LogEvents(g, logger)
	g.AddNode("A", nil)
	g.SetAttribute("name", "demo")
	detach()
	g.AddNode("B", nil)

	out := buf.String()
	for _, want := range []string{"graph changed", "nodeAdded", "attributesUpdated", "name=name"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "key=B") {
		t.Error("events after detach should not be logged")
	}
}

func TestEventJSONKeepsEmptyKeys(t *testing.T) {
	tests := []struct {
		ev   graph.Event
		want []string
		omit []string
	}{
		{graph.Event{Name: graph.EventNodeAdded}, []string{"event", "key"}, []string{"source"}},
		{graph.Event{Name: graph.EventEdgeDropped, Target: "a"}, []string{"key", "source", "target"}, []string{"undirected"}},
		{graph.Event{Name: graph.EventEdgeAttributesUpdated, Type: graph.UpdateSet, AttrName: "w"}, []string{"key", "type", "name"}, []string{"source"}},
		{graph.Event{Name: graph.EventCleared}, []string{"event"}, []string{"key"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.ev.Name), func(t *testing.T) {
			data, err := json.Marshal(tt.ev)
			if err != nil {
				t.Fatal(err)
			}
			var doc map[string]any
			if err := json.Unmarshal(data, &doc); err != nil {
				t.Fatal(err)
			}
			for _, k := range tt.want {
				if _, ok := doc[k]; !ok {
					t.Errorf("%s missing from %s", k, data)
				}
			}
			for _, k := range tt.omit {
				if _, ok := doc[k]; ok {
					t.Errorf("%s should be omitted from %s", k, data)
				}
			}
		})
	}
}
