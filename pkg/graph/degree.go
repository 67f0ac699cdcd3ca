package graph

// Degree accessors return a NotFound error for a missing node and 0 when
// the graph cannot hold the requested kind of edge. A self-loop counts once
// toward InDegree and OutDegree and twice toward Degree, DirectedDegree and
// UndirectedDegree. The WithoutSelfLoops variants ignore self-loops.

// InDegree returns the number of directed edges pointing at node.
func (g *Graph) InDegree(node string) (int, error) {
	return g.degree("InDegree", node, func(n *nodeRecord) int {
		return n.inDegree + n.directedLoops
	}, Directed)
}

// OutDegree returns the number of directed edges leaving node.
func (g *Graph) OutDegree(node string) (int, error) {
	return g.degree("OutDegree", node, func(n *nodeRecord) int {
		return n.outDegree + n.directedLoops
	}, Directed)
}

// DirectedDegree returns InDegree + OutDegree.
func (g *Graph) DirectedDegree(node string) (int, error) {
	return g.degree("DirectedDegree", node, func(n *nodeRecord) int {
		return n.inDegree + n.outDegree + n.directedLoops*2
	}, Directed)
}

// UndirectedDegree returns the number of undirected edge endpoints at node.
func (g *Graph) UndirectedDegree(node string) (int, error) {
	return g.degree("UndirectedDegree", node, func(n *nodeRecord) int {
		return n.undirectedDegree + n.undirectedLoops*2
	}, Undirected)
}

// Degree returns DirectedDegree + UndirectedDegree.
func (g *Graph) Degree(node string) (int, error) {
	return g.degree("Degree", node, func(n *nodeRecord) int {
		d := 0
		if g.opts.Type != Directed {
			d += n.undirectedDegree + n.undirectedLoops*2
		}
		if g.opts.Type != Undirected {
			d += n.inDegree + n.outDegree + n.directedLoops*2
		}
		return d
	}, Mixed)
}

// InDegreeWithoutSelfLoops is InDegree ignoring self-loops.
func (g *Graph) InDegreeWithoutSelfLoops(node string) (int, error) {
	return g.degree("InDegreeWithoutSelfLoops", node, func(n *nodeRecord) int { return n.inDegree }, Directed)
}

// OutDegreeWithoutSelfLoops is OutDegree ignoring self-loops.
func (g *Graph) OutDegreeWithoutSelfLoops(node string) (int, error) {
	return g.degree("OutDegreeWithoutSelfLoops", node, func(n *nodeRecord) int { return n.outDegree }, Directed)
}

// DirectedDegreeWithoutSelfLoops is DirectedDegree ignoring self-loops.
func (g *Graph) DirectedDegreeWithoutSelfLoops(node string) (int, error) {
	return g.degree("DirectedDegreeWithoutSelfLoops", node, func(n *nodeRecord) int {
		return n.inDegree + n.outDegree
	}, Directed)
}

// UndirectedDegreeWithoutSelfLoops is UndirectedDegree ignoring self-loops.
func (g *Graph) UndirectedDegreeWithoutSelfLoops(node string) (int, error) {
	return g.degree("UndirectedDegreeWithoutSelfLoops", node, func(n *nodeRecord) int {
		return n.undirectedDegree
	}, Undirected)
}

// DegreeWithoutSelfLoops is Degree ignoring self-loops.
func (g *Graph) DegreeWithoutSelfLoops(node string) (int, error) {
	return g.degree("DegreeWithoutSelfLoops", node, func(n *nodeRecord) int {
		d := 0
		if g.opts.Type != Directed {
			d += n.undirectedDegree
		}
		if g.opts.Type != Undirected {
			d += n.inDegree + n.outDegree
		}
		return d
	}, Mixed)
}

// Degrees bundles every degree of a node.
type Degrees struct {
	In         int `json:"in"`
	Out        int `json:"out"`
	Directed   int `json:"directed"`
	Undirected int `json:"undirected"`
	Total      int `json:"total"`
	SelfLoops  int `json:"selfLoops"`
}

// AllDegrees returns every degree of node at once.
func (g *Graph) AllDegrees(node string) (Degrees, error) {
	n, err := g.mustNode("AllDegrees", node)
	if err != nil {
		return Degrees{}, err
	}
	var d Degrees
	if g.opts.Type != Undirected {
		d.In = n.inDegree + n.directedLoops
		d.Out = n.outDegree + n.directedLoops
		d.Directed = d.In + d.Out
	}
	if g.opts.Type != Directed {
		d.Undirected = n.undirectedDegree + n.undirectedLoops*2
	}
	d.Total = d.Directed + d.Undirected
	d.SelfLoops = n.directedLoops + n.undirectedLoops
	return d, nil
}

func (g *Graph) degree(op, node string, count func(*nodeRecord) int, t Type) (int, error) {
	n, err := g.mustNode(op, node)
	if err != nil {
		return 0, err
	}
	if t != Mixed && g.opts.Type != Mixed && g.opts.Type != t {
		return 0, nil
	}
	return count(n), nil
}
