package io

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
)

func sample() *graph.Graph {
	g := graph.NewMulti()
	g.SetAttribute("name", "deps")
	g.AddNode("app", graph.Attributes{"version": "1.0", "tags": []any{"cli", "web"}})
	g.AddNode("lib", graph.Attributes{"meta": map[string]any{"license": "MIT"}})
	g.AddDirectedEdgeWithKey("e1", "app", "lib", graph.Attributes{"weight": 2.5})
	g.AddUndirectedEdge("lib", "app", nil)
	g.AddDirectedEdge("lib", "lib", nil)
	return g
}

func assertSameStructure(t *testing.T, got, want *graph.Graph) {
	t.Helper()
	if got.Options() != want.Options() {
		t.Errorf("options = %+v, want %+v", got.Options(), want.Options())
	}
	if !slices.Equal(got.Nodes(), want.Nodes()) {
		t.Errorf("nodes = %v, want %v", got.Nodes(), want.Nodes())
	}
	ge, _ := got.Edges()
	we, _ := want.Edges()
	if !slices.Equal(ge, we) {
		t.Errorf("edges = %v, want %v", ge, we)
	}
	if got.UndirectedSize() != want.UndirectedSize() || got.SelfLoopCount() != want.SelfLoopCount() {
		t.Errorf("undirected=%d loops=%d", got.UndirectedSize(), got.SelfLoopCount())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := sample()
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"allowSelfLoops": true`) {
		t.Errorf("options missing from output:\n%s", buf.String())
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	assertSameStructure(t, back, g)

	w, _ := back.GetEdgeAttribute(graph.Key("e1"), "weight")
	if w != 2.5 {
		t.Errorf("weight = %v", w)
	}
	meta, _ := back.GetNodeAttribute("lib", "meta")
	if m, ok := meta.(map[string]any); !ok || m["license"] != "MIT" {
		t.Errorf("meta = %#v", meta)
	}
}

func TestBSONRoundTrip(t *testing.T) {
	g := sample()
	var buf bytes.Buffer
	if err := WriteBSON(g, &buf); err != nil {
		t.Fatal(err)
	}

	back, err := ReadBSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	assertSameStructure(t, back, g)

	meta, _ := back.GetNodeAttribute("lib", "meta")
	if m, ok := meta.(map[string]any); !ok || m["license"] != "MIT" {
		t.Errorf("embedded document = %#v, want a plain map", meta)
	}
	tags, _ := back.GetNodeAttribute("app", "tags")
	if s, ok := tags.([]any); !ok || len(s) != 2 || s[0] != "cli" {
		t.Errorf("array = %#v, want a plain slice", tags)
	}
	if back.GetAttribute("name") != "deps" {
		t.Errorf("graph attributes = %v", back.GetAttributes())
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	g := sample()
	var buf bytes.Buffer
	if err := WriteYAML(g, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "allowSelfLoops: true") {
		t.Errorf("options missing from output:\n%s", buf.String())
	}

	back, err := ReadYAML(&buf)
	if err != nil {
		t.Fatal(err)
	}
	assertSameStructure(t, back, g)

	meta, _ := back.GetNodeAttribute("lib", "meta")
	if m, ok := meta.(map[string]any); !ok || m["license"] != "MIT" {
		t.Errorf("meta = %#v", meta)
	}
}

func TestReadYAMLHandWritten(t *testing.T) {
	input := `
options:
  type: directed
nodes:
  - key: 1
  - key: two
    attributes:
      tags: [a, b]
      limits: {1: low}
edges:
  - source: 1
    target: two
`
	g, err := ReadYAML(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if g.Type() != graph.Directed || !g.HasDirectedEdgeBetween("1", "two") {
		t.Errorf("graph = %s", g)
	}
	limits, _ := g.GetNodeAttribute("two", "limits")
	if m, ok := limits.(map[string]any); !ok || m["1"] != "low" {
		t.Errorf("limits = %#v, want a map keyed by strings", limits)
	}
}

func TestReadBSONNumericKeys(t *testing.T) {
	doc := bson.M{
		"nodes": bson.A{bson.M{"key": int32(1)}, bson.M{"key": "two"}},
		"edges": bson.A{bson.M{"source": int32(1), "target": "two"}},
	}
	data, err := bson.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	g, err := ReadBSON(bytes.NewReader(data), graph.WithType(graph.Directed))
	if err != nil {
		t.Fatal(err)
	}
	if !g.HasNode("1") || !g.HasDirectedEdgeBetween("1", "two") {
		t.Errorf("nodes = %v", g.Nodes())
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		read  func(*strings.Reader) error
		want  errors.Code
	}{
		{"malformed json", `{"nodes": [`, func(r *strings.Reader) error { _, err := ReadJSON(r); return err }, errors.ErrCodeInvalidFormat},
		{"malformed bson", "nope", func(r *strings.Reader) error { _, err := ReadBSON(r); return err }, errors.ErrCodeInvalidFormat},
		{"malformed yaml", "nodes: [", func(r *strings.Reader) error { _, err := ReadYAML(r); return err }, errors.ErrCodeInvalidFormat},
		{"invalid node", `{"nodes": [{"attributes": {}}]}`, func(r *strings.Reader) error { _, err := ReadJSON(r); return err }, errors.ErrCodeInvalidArguments},
		{"duplicate node", `{"nodes": [{"key": "a"}, {"key": "a"}]}`, func(r *strings.Reader) error { _, err := ReadJSON(r); return err }, errors.ErrCodeUsage},
		{"unknown endpoint", `{"nodes": [{"key": "a"}], "edges": [{"source": "a", "target": "b"}]}`, func(r *strings.Reader) error { _, err := ReadJSON(r); return err }, errors.ErrCodeNotFound},
		{"unknown format", `{}`, func(r *strings.Reader) error { _, err := Read(r, Format("xml")); return err }, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %s, got %v", tt.want, err)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"graph.json", FormatJSON, false},
		{"dir/graph.BSON", FormatBSON, false},
		{"graph.yaml", FormatYAML, false},
		{"graph.yml", FormatYAML, false},
		{"graph.xml", "", true},
		{"graph", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImportExportFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	g := sample()

	for _, name := range []string{"g.json", "g.bson", "g.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Export(ctx, g, path); err != nil {
				t.Fatal(err)
			}
			info, err := os.Stat(path)
			if err != nil || info.Size() == 0 {
				t.Fatalf("exported file: %v", err)
			}
			back, err := Import(ctx, path)
			if err != nil {
				t.Fatal(err)
			}
			assertSameStructure(t, back, g)
		})
	}

	_, err := Import(ctx, filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestReadOptionsOverride(t *testing.T) {
	input := `{"nodes": [{"key": "a"}, {"key": "b"}], "edges": [{"source": "a", "target": "b"}], "options": {"type": "directed"}}`
	g, err := ReadJSON(strings.NewReader(input), graph.WithMulti(true))
	if err != nil {
		t.Fatal(err)
	}
	if g.Type() != graph.Directed || !g.Multi() {
		t.Errorf("options = %+v", g.Options())
	}
}

func TestEmptyKeysRoundTrip(t *testing.T) {
	g := graph.New()
	g.AddNode("", nil)
	g.AddNode("a", nil)
	g.AddEdgeWithKey("", "a", "", nil)

	for _, format := range []Format{FormatJSON, FormatBSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(g, &buf, format); err != nil {
				t.Fatal(err)
			}
			back, err := Read(&buf, format)
			if err != nil {
				t.Fatal(err)
			}
			assertSameStructure(t, back, g)
			if !back.HasEdge("") {
				edges, _ := back.Edges()
				t.Errorf("edge keyed \"\" lost its key, edges = %q", edges)
			}
		})
	}
}
