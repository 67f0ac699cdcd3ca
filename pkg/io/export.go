package io

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
	"github.com/matzehuels/graphkit/pkg/observability"
)

// WriteJSON encodes the graph as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.Export()); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "encode json")
	}
	return nil
}

// WriteBSON encodes the graph as a single BSON document and writes it to w.
func WriteBSON(g *graph.Graph, w io.Writer) error {
	data, err := MarshalBSON(g)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write bson")
	}
	return nil
}

// WriteYAML encodes the graph as a YAML document.
func WriteYAML(g *graph.Graph, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g.Export()); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write yaml")
	}
	return nil
}

// MarshalBSON returns the BSON document of the graph.
func MarshalBSON(g *graph.Graph) ([]byte, error) {
	data, err := bson.Marshal(g.Export())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "encode bson")
	}
	return data, nil
}

// Write encodes the graph with the given codec.
func Write(g *graph.Graph, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(g, w)
	case FormatBSON:
		return WriteBSON(g, w)
	case FormatYAML:
		return WriteYAML(g, w)
	}
	return errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
}

// Export writes the graph to a file at path, choosing the codec from its
// extension.
func Export(ctx context.Context, g *graph.Graph, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return ExportAs(ctx, g, path, format)
}

// ExportAs is [Export] with an explicit codec.
func ExportAs(ctx context.Context, g *graph.Graph, path string, format Format) (err error) {
	var n int
	defer func() { observability.Graph().OnExport(ctx, string(format), path, n, err) }()

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()

	cw := &countingWriter{w: f}
	if err := Write(g, cw, format); err != nil {
		return err
	}
	n = cw.n
	return nil
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
