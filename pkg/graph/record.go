package graph

import (
	"maps"
	"slices"
)

// Attributes is a plain key-value map attached to nodes, edges and the graph.
type Attributes map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty map.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	maps.Copy(out, a)
	return out
}

// adjacency maps a neighbor key to the edges shared with that neighbor.
type adjacency = orderedMap[*edgeSet]

// nodeRecord is the per-node storage. Which slots exist depends on kind:
// in and out for directed and mixed records, undirected for undirected and
// mixed records. Absent slots are nil.
type nodeRecord struct {
	key        string
	kind       Type
	attributes Attributes

	in         *adjacency
	out        *adjacency
	undirected *adjacency

	inDegree         int
	outDegree        int
	undirectedDegree int
	directedLoops    int
	undirectedLoops  int
}

func newNodeRecord(kind Type, key string, attrs Attributes) *nodeRecord {
	if attrs == nil {
		attrs = Attributes{}
	}
	n := &nodeRecord{key: key, kind: kind, attributes: attrs}
	n.clear()
	return n
}

// clear resets slots and counters.
func (n *nodeRecord) clear() {
	n.in, n.out, n.undirected = nil, nil, nil
	if n.kind != Undirected {
		n.in = newOrderedMap[*edgeSet]()
		n.out = newOrderedMap[*edgeSet]()
	}
	if n.kind != Directed {
		n.undirected = newOrderedMap[*edgeSet]()
	}
	n.inDegree, n.outDegree, n.undirectedDegree = 0, 0, 0
	n.directedLoops, n.undirectedLoops = 0, 0
}

func (n *nodeRecord) upgradeToMixed() {
	if n.kind == Mixed {
		return
	}
	if n.in == nil {
		n.in = newOrderedMap[*edgeSet]()
		n.out = newOrderedMap[*edgeSet]()
	}
	if n.undirected == nil {
		n.undirected = newOrderedMap[*edgeSet]()
	}
	n.kind = Mixed
}

// edgeRecord is the per-edge storage.
type edgeRecord struct {
	key        string
	attributes Attributes
	undirected bool
	generated  bool
	source     *nodeRecord
	target     *nodeRecord
}

func (e *edgeRecord) selfLoop() bool { return e.source == e.target }

// opposite returns the endpoint of e that is not n. For a self-loop it
// returns n itself.
func (e *edgeRecord) opposite(n *nodeRecord) *nodeRecord {
	if e.source == n {
		return e.target
	}
	return e.source
}

// edgeSet is the value stored in an adjacency slot: every edge between a
// node and one neighbor in one orientation, in insertion order. The same
// *edgeSet is shared by the two slots that reference it. Simple graphs hold
// exactly one edge per set.
type edgeSet struct {
	edges []*edgeRecord
}

func (s *edgeSet) add(e *edgeRecord) { s.edges = append(s.edges, e) }

func (s *edgeSet) remove(e *edgeRecord) {
	if i := slices.Index(s.edges, e); i >= 0 {
		s.edges = slices.Delete(s.edges, i, i+1)
	}
}

func (s *edgeSet) len() int { return len(s.edges) }

func (s *edgeSet) first() *edgeRecord {
	if len(s.edges) == 0 {
		return nil
	}
	return s.edges[0]
}
