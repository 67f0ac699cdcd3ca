package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
)

func mixed(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, k := range []string{"a", "b", "c"} {
		if _, err := g.AddNode(k, nil); err != nil {
			t.Fatal(err)
		}
	}
	g.SetNodeAttribute("a", "version", "1.0")
	if _, err := g.AddDirectedEdgeWithKey("ab", "a", "b", graph.Attributes{"weight": 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddUndirectedEdgeWithKey("bc", "b", "c", nil); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOTMixed(t *testing.T) {
	dot := ToDOT(mixed(t), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB;",
		`"a" [label="a"];`,
		`"a" -> "b";`,
		`"b" -> "c" [dir=none];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTUndirected(t *testing.T) {
	g := graph.NewUndirected()
	g.AddNode("x", nil)
	g.AddNode("y", nil)
	g.AddEdge("x", "y", nil)

	dot := ToDOT(g, Options{RankDir: "LR"})
	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("undirected graph should be a DOT graph:\n%s", dot)
	}
	if !strings.Contains(dot, `"x" -- "y";`) || strings.Contains(dot, "dir=none") {
		t.Errorf("unexpected edge statement:\n%s", dot)
	}
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Errorf("rankdir not applied:\n%s", dot)
	}
}

func TestToDOTLabels(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"detailed", Options{Detailed: true}, []string{`label="a\nversion: 1.0"`, `label="weight: 2"`}},
		{"edge keys", Options{EdgeLabels: true}, []string{`[label="ab"]`, `[dir=none, label="bc"]`}},
		{"label attribute", Options{LabelAttribute: "version"}, []string{`"a" [label="1.0"];`, `"b" [label="b"];`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(mixed(t), tt.opts)
			for _, want := range tt.want {
				if !strings.Contains(dot, want) {
					t.Errorf("DOT missing %q:\n%s", want, dot)
				}
			}
		})
	}
}

func TestToDOTParallelAndSelfLoops(t *testing.T) {
	g := graph.NewMultiDirected()
	g.AddNode("a", nil)
	g.AddEdge("a", "a", nil)
	g.AddEdge("a", "a", nil)

	dot := ToDOT(g, Options{})
	if n := strings.Count(dot, `"a" -> "a";`); n != 2 {
		t.Errorf("expected 2 self-loop statements, got %d:\n%s", n, dot)
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"svg", "PNG", "dot"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("expected UNSUPPORTED, got %v", err)
	}
}

func TestRenderDOT(t *testing.T) {
	out, err := Render(context.Background(), mixed(t), FormatDOT, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("digraph")) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := Render(context.Background(), mixed(t), FormatSVG, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Errorf("root element not normalized: %.200s", svg)
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), "digraph {")
	if err == nil {
		t.Fatal("expected an error for malformed DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}
