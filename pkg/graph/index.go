package graph

// slotsFor returns the slot of src holding edges toward its neighbors and
// the slot of tgt holding edges from its neighbors, for the given kind of
// edge. Undirected edges use the undirected slot on both sides.
func slotsFor(undirected bool, src, tgt *nodeRecord) (out, in *adjacency) {
	if undirected {
		return src.undirected, tgt.undirected
	}
	return src.out, tgt.in
}

// updateStructureIndex registers e in the adjacency slots of its endpoints.
// Both endpoints reference the same *edgeSet so either side sees parallel
// edges. An undirected self-loop is registered once; a directed self-loop
// appears under both out[self] and in[self].
func (g *Graph) updateStructureIndex(e *edgeRecord) {
	src, tgt := e.source, e.target
	out, in := slotsFor(e.undirected, src, tgt)

	set, ok := out.get(tgt.key)
	if !ok {
		set = &edgeSet{}
		out.set(tgt.key, set)
	}
	set.add(e)

	if e.undirected && src == tgt {
		return
	}
	if !in.has(src.key) {
		in.set(src.key, set)
	}
}

// clearEdgeFromStructureIndex removes e from the adjacency slots of its
// endpoints, dropping the entries once the shared set is empty.
func (g *Graph) clearEdgeFromStructureIndex(e *edgeRecord) {
	src, tgt := e.source, e.target
	out, in := slotsFor(e.undirected, src, tgt)

	set, ok := out.get(tgt.key)
	if !ok {
		return
	}
	set.remove(e)
	if set.len() > 0 {
		return
	}
	out.delete(tgt.key)
	in.delete(src.key)
}

// clearStructureIndex empties every node's slots and counters.
func (g *Graph) clearStructureIndex() {
	for _, n := range g.nodes.all() {
		n.clear()
	}
}

// upgradeStructureIndexToMulti is a no-op: slots always hold shared edge
// sets, so a simple index is already a valid multi index.
func (g *Graph) upgradeStructureIndexToMulti() {}
