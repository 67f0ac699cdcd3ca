package graph

import (
	"strings"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// Type selects which kinds of edges a graph accepts. It is also used as an
// edge filter by traversal and attribute accessors, where [Mixed] means
// "either kind".
type Type uint8

const (
	// Mixed graphs accept both directed and undirected edges.
	Mixed Type = iota
	// Directed graphs accept directed edges only.
	Directed
	// Undirected graphs accept undirected edges only.
	Undirected
)

// String returns the lowercase name used in serialized options.
func (t Type) String() string {
	switch t {
	case Mixed:
		return "mixed"
	case Directed:
		return "directed"
	case Undirected:
		return "undirected"
	default:
		return "unknown"
	}
}

func (t Type) valid() bool { return t <= Undirected }

// ParseType parses "mixed", "directed" or "undirected" (case-insensitive).
// The empty string parses as [Mixed].
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mixed":
		return Mixed, nil
	case "directed":
		return Directed, nil
	case "undirected":
		return Undirected, nil
	}
	return Mixed, errors.InvalidArguments("invalid graph type %q: expecting mixed, directed or undirected", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, errors.InvalidArguments("invalid graph type %d", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Options are the construction options of a graph. They can only change
// afterwards through [Graph.UpgradeToMixed] and [Graph.UpgradeToMulti].
type Options struct {
	Type           Type `json:"type"`           // Kind of edges accepted
	Multi          bool `json:"multi"`          // Allow parallel edges
	AllowSelfLoops bool `json:"allowSelfLoops"` // Allow edges whose source equals their target
}

// DefaultOptions returns a mixed, simple graph that allows self-loops.
func DefaultOptions() Options {
	return Options{Type: Mixed, Multi: false, AllowSelfLoops: true}
}

// Validate reports an InvalidArguments error for an unknown Type.
func (o Options) Validate() error {
	if !o.Type.valid() {
		return errors.InvalidArguments("invalid graph type %d: expecting mixed, directed or undirected", o.Type)
	}
	return nil
}

// widenedBy reports whether every graph valid under o is also valid under w.
func (o Options) widenedBy(w Options) bool {
	if o.Type != w.Type && w.Type != Mixed {
		return false
	}
	if o.Multi && !w.Multi {
		return false
	}
	if o.AllowSelfLoops && !w.AllowSelfLoops {
		return false
	}
	return true
}

// Option configures a graph at construction time.
type Option func(*Options)

// WithType sets the graph type.
func WithType(t Type) Option {
	return func(o *Options) { o.Type = t }
}

// WithMulti allows or forbids parallel edges.
func WithMulti(multi bool) Option {
	return func(o *Options) { o.Multi = multi }
}

// WithSelfLoops allows or forbids self-loops.
func WithSelfLoops(allow bool) Option {
	return func(o *Options) { o.AllowSelfLoops = allow }
}

// WithOptions replaces all options at once.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

func resolveOptions(base Options, opts []Option) Options {
	for _, opt := range opts {
		if opt != nil {
			opt(&base)
		}
	}
	return base
}
