package graph

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// SerializedNode is the wire form of a node.
type SerializedNode struct {
	Key        string     `json:"key" bson:"key" yaml:"key"`
	Attributes Attributes `json:"attributes,omitempty" bson:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// SerializedEdge is the wire form of an edge. A nil Key means the
// importing graph generates one; a pointer to "" is the empty key.
type SerializedEdge struct {
	Key        *string    `json:"key,omitempty" bson:"key,omitempty" yaml:"key,omitempty"`
	Source     string     `json:"source" bson:"source" yaml:"source"`
	Target     string     `json:"target" bson:"target" yaml:"target"`
	Attributes Attributes `json:"attributes,omitempty" bson:"attributes,omitempty" yaml:"attributes,omitempty"`
	Undirected bool       `json:"undirected,omitempty" bson:"undirected,omitempty" yaml:"undirected,omitempty"`
}

// SerializedOptions is the wire form of [Options].
type SerializedOptions struct {
	Type           string `json:"type" bson:"type" yaml:"type"`
	Multi          bool   `json:"multi" bson:"multi" yaml:"multi"`
	AllowSelfLoops bool   `json:"allowSelfLoops" bson:"allowSelfLoops" yaml:"allowSelfLoops"`
}

// SerializedGraph is the wire form of a whole graph.
//
//	{
//	  "attributes": {"name": "example"},
//	  "nodes": [{"key": "a"}, {"key": "b", "attributes": {"x": 1}}],
//	  "edges": [{"key": "e1", "source": "a", "target": "b", "undirected": true}],
//	  "options": {"type": "mixed", "multi": false, "allowSelfLoops": true}
//	}
type SerializedGraph struct {
	Attributes Attributes         `json:"attributes" bson:"attributes" yaml:"attributes"`
	Nodes      []SerializedNode   `json:"nodes" bson:"nodes" yaml:"nodes"`
	Edges      []SerializedEdge   `json:"edges" bson:"edges" yaml:"edges"`
	Options    *SerializedOptions `json:"options,omitempty" bson:"options,omitempty" yaml:"options,omitempty"`
}

// ToOptions converts the wire form back to [Options].
func (o SerializedOptions) ToOptions() (Options, error) {
	t, err := ParseType(o.Type)
	if err != nil {
		return Options{}, err
	}
	return Options{Type: t, Multi: o.Multi, AllowSelfLoops: o.AllowSelfLoops}, nil
}

func serializeOptions(o Options) *SerializedOptions {
	return &SerializedOptions{Type: o.Type.String(), Multi: o.Multi, AllowSelfLoops: o.AllowSelfLoops}
}

// copyNonEmpty returns a copy of attrs, or nil when attrs is empty.
func copyNonEmpty(attrs Attributes) Attributes {
	if len(attrs) == 0 {
		return nil
	}
	return maps.Clone(attrs)
}

func serializeNode(n *nodeRecord) SerializedNode {
	return SerializedNode{Key: n.key, Attributes: copyNonEmpty(n.attributes)}
}

func serializeEdge(e *edgeRecord) SerializedEdge {
	key := e.key
	return SerializedEdge{
		Key:        &key,
		Source:     e.source.key,
		Target:     e.target.key,
		Attributes: copyNonEmpty(e.attributes),
		Undirected: e.undirected,
	}
}

// ExportNode returns the wire form of a node.
func (g *Graph) ExportNode(key string) (SerializedNode, error) {
	n, err := g.mustNode("ExportNode", key)
	if err != nil {
		return SerializedNode{}, err
	}
	return serializeNode(n), nil
}

// ExportEdge returns the wire form of an edge.
func (g *Graph) ExportEdge(key string) (SerializedEdge, error) {
	e, err := g.mustEdge("ExportEdge", key)
	if err != nil {
		return SerializedEdge{}, err
	}
	return serializeEdge(e), nil
}

// Export returns the wire form of the graph. Nodes and edges keep their
// insertion order and attribute maps are copied.
func (g *Graph) Export() SerializedGraph {
	data := SerializedGraph{
		Attributes: maps.Clone(g.attributes),
		Nodes:      make([]SerializedNode, 0, g.nodes.len()),
		Edges:      make([]SerializedEdge, 0, g.edges.len()),
		Options:    serializeOptions(g.opts),
	}
	for _, n := range g.nodes.all() {
		data.Nodes = append(data.Nodes, serializeNode(n))
	}
	for _, e := range g.edges.all() {
		data.Edges = append(data.Edges, serializeEdge(e))
	}
	return data
}

// MarshalJSON encodes the exported graph.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Export())
}

// ImportNode adds the node, or merges it into an existing node when merge
// is true.
func (g *Graph) ImportNode(data SerializedNode, merge bool) error {
	attrs := data.Attributes.Clone()
	if merge {
		g.MergeNode(data.Key, attrs)
		return nil
	}
	_, err := g.AddNode(data.Key, attrs)
	return err
}

// ImportEdge adds the edge, or merges it when merge is true, using the
// directed or undirected variant according to data.Undirected and the
// keyed variant when data.Key is non-nil.
func (g *Graph) ImportEdge(data SerializedEdge, merge bool) error {
	attrs := data.Attributes.Clone()
	var key string
	if data.Key != nil {
		key = *data.Key
	}

	var err error
	switch {
	case merge:
		_, err = g.mergeEdge("ImportEdge", data.Key != nil, key, data.Undirected, data.Source, data.Target, attrs, nil, false)
	default:
		_, err = g.addEdge("ImportEdge", data.Key != nil, key, data.Undirected, data.Source, data.Target, attrs)
	}
	return err
}

// Import loads serialized data into the graph: graph attributes (replaced,
// or merged when merge is true), then nodes, then edges. Options in data
// are ignored; see [From] to build a graph with them.
func (g *Graph) Import(data SerializedGraph, merge bool) error {
	if data.Attributes != nil {
		if merge {
			if err := g.MergeAttributes(data.Attributes.Clone()); err != nil {
				return err
			}
		} else if err := g.ReplaceAttributes(data.Attributes.Clone()); err != nil {
			return err
		}
	}
	for _, n := range data.Nodes {
		if err := g.ImportNode(n, merge); err != nil {
			return err
		}
	}
	for _, e := range data.Edges {
		if err := g.ImportEdge(e, merge); err != nil {
			return err
		}
	}
	return nil
}

// ImportRaw validates an untyped payload, as produced by decoding JSON into
// map[string]any, and imports it. Keys, sources and targets are compared by
// their canonical string form, so a numeric key 1 and a string key "1" name
// the same node.
func (g *Graph) ImportRaw(raw map[string]any, merge bool) error {
	data, err := ParseSerialized(raw)
	if err != nil {
		return err
	}
	return g.Import(data, merge)
}

// ParseSerialized converts an untyped payload to a [SerializedGraph],
// returning an InvalidArguments error describing the first invalid entry.
func ParseSerialized(raw map[string]any) (SerializedGraph, error) {
	var data SerializedGraph

	if v, ok := raw["attributes"]; ok && v != nil {
		attrs, ok := asAttributes(v)
		if !ok {
			return data, errors.InvalidArguments("Import: invalid attributes. Expecting a plain map")
		}
		data.Attributes = attrs
	}

	nodes, err := asList(raw, "nodes")
	if err != nil {
		return data, err
	}
	for i, v := range nodes {
		n, err := parseNode(v)
		if err != nil {
			return data, errors.InvalidArguments("Import: invalid serialized node at index %d: %s", i, errors.UserMessage(err))
		}
		data.Nodes = append(data.Nodes, n)
	}

	edges, err := asList(raw, "edges")
	if err != nil {
		return data, err
	}
	for i, v := range edges {
		e, err := parseEdge(v)
		if err != nil {
			return data, errors.InvalidArguments("Import: invalid serialized edge at index %d: %s", i, errors.UserMessage(err))
		}
		data.Edges = append(data.Edges, e)
	}

	if v, ok := raw["options"]; ok && v != nil {
		opts, err := parseOptions(v)
		if err != nil {
			return data, err
		}
		data.Options = opts
	}
	return data, nil
}

func asList(raw map[string]any, field string) ([]any, error) {
	v, ok := raw[field]
	if !ok || v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, errors.InvalidArguments("Import: invalid %s. Expecting an array", field)
	}
	return list, nil
}

func asAttributes(v any) (Attributes, bool) {
	switch m := v.(type) {
	case Attributes:
		return m, true
	case map[string]any:
		return Attributes(m), true
	}
	return nil, false
}

// optionalAttributes accepts a missing attributes field. A present one,
// null included, must be a plain map.
func optionalAttributes(obj map[string]any) (Attributes, error) {
	v, ok := obj["attributes"]
	if !ok {
		return nil, nil
	}
	attrs, ok := asAttributes(v)
	if !ok {
		return nil, errors.InvalidArguments("invalid attributes: expecting a plain map or omitted")
	}
	return attrs, nil
}

func parseNode(v any) (SerializedNode, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return SerializedNode{}, errors.InvalidArguments("not a plain map")
	}
	key, ok := obj["key"]
	if !ok || key == nil {
		return SerializedNode{}, errors.InvalidArguments("no key provided")
	}
	attrs, err := optionalAttributes(obj)
	if err != nil {
		return SerializedNode{}, err
	}
	return SerializedNode{Key: CanonicalKey(key), Attributes: attrs}, nil
}

func parseEdge(v any) (SerializedEdge, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return SerializedEdge{}, errors.InvalidArguments("not a plain map")
	}
	source, ok := obj["source"]
	if !ok || source == nil {
		return SerializedEdge{}, errors.InvalidArguments("missing source")
	}
	target, ok := obj["target"]
	if !ok || target == nil {
		return SerializedEdge{}, errors.InvalidArguments("missing target")
	}
	attrs, err := optionalAttributes(obj)
	if err != nil {
		return SerializedEdge{}, err
	}
	e := SerializedEdge{Source: CanonicalKey(source), Target: CanonicalKey(target), Attributes: attrs}
	if key, ok := obj["key"]; ok && key != nil {
		k := CanonicalKey(key)
		e.Key = &k
	}
	if u, ok := obj["undirected"]; ok && u != nil {
		b, ok := u.(bool)
		if !ok {
			return SerializedEdge{}, errors.InvalidArguments("invalid undirected: expecting a boolean or omitted")
		}
		e.Undirected = b
	}
	return e, nil
}

func parseOptions(v any) (*SerializedOptions, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errors.InvalidArguments("Import: invalid options. Expecting a plain map")
	}
	opts := serializeOptions(DefaultOptions())
	if t, ok := obj["type"].(string); ok {
		opts.Type = t
	}
	if m, ok := obj["multi"].(bool); ok {
		opts.Multi = m
	}
	if l, ok := obj["allowSelfLoops"].(bool); ok {
		opts.AllowSelfLoops = l
	}
	return opts, nil
}

// CanonicalKey returns the string form under which a decoded key is
// stored. Integral floats, as produced by encoding/json, drop their
// fractional part.
func CanonicalKey(v any) string {
	switch k := v.(type) {
	case string:
		return k
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(k), 'f', -1, 32)
	case json.Number:
		return k.String()
	case fmt.Stringer:
		return k.String()
	default:
		return fmt.Sprint(k)
	}
}

// From builds a graph from serialized data. Options in data are applied
// first and opts override them.
func From(data SerializedGraph, opts ...Option) (*Graph, error) {
	base := DefaultOptions()
	if data.Options != nil {
		o, err := data.Options.ToOptions()
		if err != nil {
			return nil, err
		}
		base = o
	}
	g, err := NewFromOptions(resolveOptions(base, opts))
	if err != nil {
		return nil, err
	}
	if err := g.Import(data, false); err != nil {
		return nil, err
	}
	return g, nil
}

// FromRaw is [From] for an untyped payload, see [Graph.ImportRaw].
func FromRaw(raw map[string]any, opts ...Option) (*Graph, error) {
	data, err := ParseSerialized(raw)
	if err != nil {
		return nil, err
	}
	return From(data, opts...)
}
