package cache

// Keyer derives cache keys.
type Keyer interface {
	// GraphKey names a stored graph snapshot.
	GraphKey(name string) string

	// RenderKey names an artifact rendered from the graph whose serialized
	// form hashes to graphHash.
	RenderKey(graphHash string, opts RenderKeyOpts) string
}

// RenderKeyOpts are the render settings that change the artifact.
type RenderKeyOpts struct {
	Format   string `json:"format"`
	RankDir  string `json:"rankdir,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
	Label    string `json:"label,omitempty"`
	Edges    bool   `json:"edges,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GraphKey returns "graph:<name>".
func (DefaultKeyer) GraphKey(name string) string {
	return "graph:" + name
}

// RenderKey returns "render:" followed by a hash of the graph hash and opts.
func (DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return hashKey("render", graphHash, opts)
}
