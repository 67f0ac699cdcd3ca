package io

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
	"github.com/matzehuels/graphkit/pkg/observability"
)

// ReadJSON decodes a JSON document from r into a new graph.
//
// The document is validated entry by entry before anything is imported
// (see [graph.ParseSerialized]), so the error names the first invalid node
// or edge. ReadJSON does not close r.
func ReadJSON(r io.Reader, opts ...graph.Option) (*graph.Graph, error) {
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return graph.FromRaw(raw, opts...)
}

// ReadBSON decodes a BSON document from r into a new graph.
//
// Embedded documents and arrays are converted to plain maps and slices
// first, so attribute values look the same as after a JSON import, apart
// from integers which keep their BSON width. ReadBSON does not close r.
func ReadBSON(r io.Reader, opts ...graph.Option) (*graph.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read bson")
	}
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode bson")
	}
	raw, _ := plain(doc).(map[string]any)
	return graph.FromRaw(raw, opts...)
}

// ReadYAML decodes a YAML document from r into a new graph. Mapping keys
// that are not strings are converted with [graph.CanonicalKey].
func ReadYAML(r io.Reader, opts ...graph.Option) (*graph.Graph, error) {
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	raw, _ := plain(doc).(map[string]any)
	return graph.FromRaw(raw, opts...)
}

// plain converts decoded documents to map[string]any and []any,
// recursively.
func plain(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[graph.CanonicalKey(k)] = plain(val)
		}
		return m
	case primitive.M:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = plain(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = plain(val)
		}
		return m
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plain(e.Value)
		}
		return m
	case primitive.A:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = plain(val)
		}
		return s
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = plain(val)
		}
		return s
	}
	return v
}

// Read decodes r with the given codec.
func Read(r io.Reader, format Format, opts ...graph.Option) (*graph.Graph, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r, opts...)
	case FormatBSON:
		return ReadBSON(r, opts...)
	case FormatYAML:
		return ReadYAML(r, opts...)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
}

// Import reads the file at path, choosing the codec from its extension.
//
// A missing file is a FILE_NOT_FOUND error. Import reports to the
// registered [observability.GraphHooks].
func Import(ctx context.Context, path string, opts ...graph.Option) (*graph.Graph, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return ImportAs(ctx, path, format, opts...)
}

// ImportAs is [Import] with an explicit codec.
func ImportAs(ctx context.Context, path string, format Format, opts ...graph.Option) (g *graph.Graph, err error) {
	hooks := observability.Graph()
	hooks.OnImportStart(ctx, string(format), path)
	start := time.Now()
	defer func() {
		var order, size int
		if g != nil {
			order, size = g.Order(), g.Size()
		}
		hooks.OnImportComplete(ctx, string(format), path, order, size, time.Since(start), err)
	}()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format, opts...)
}
