package scene

// Layers partition node data by rendering concern (one layer per shader
// or input family, typically). Active layers form a doubly-linked chain
// walked first→last when ordering data and last→first when ordering
// event candidates. Removing a layer unlinks it; its slot and data arena
// stay in place for reuse.

// CreateLayer allocates a layer slot with the given capabilities and
// appends it to the end of the active chain. The chain end is the top:
// its draws paint last, its event candidates are tried first.
func (g *Graph) CreateLayer(caps LayerCaps) LayerHandle {
	var slot uint32
	if n := len(g.freeLayers); n > 0 {
		slot = g.freeLayers[n-1]
		g.freeLayers = g.freeLayers[:n-1]
		ls := &g.layers[slot]
		ls.caps = caps
		ls.prev, ls.next = -1, -1
	} else {
		slot = uint32(len(g.layers))
		g.layers = append(g.layers, layerState{caps: caps, gen: 1, prev: -1, next: -1})
	}

	ls := &g.layers[slot]
	ls.prev = g.lastLayer
	if g.lastLayer >= 0 {
		g.layers[g.lastLayer].next = int32(slot)
	} else {
		g.firstLayer = int32(slot)
	}
	g.lastLayer = int32(slot)
	g.layerCount++
	return LayerHandle{ID: slot, Gen: ls.gen}
}

// RemoveLayer frees the layer's live data slots, unlinks the layer from
// the active chain, and bumps its generation. Chain walks skip removed
// slots naturally; nothing is compacted.
func (g *Graph) RemoveLayer(l LayerHandle) {
	g.mustLayer(l)
	ls := &g.layers[l.ID]
	for d, node := range ls.dataNode {
		if node.Gen != 0 {
			ls.dataNode[d] = Handle{}
			ls.dataGens[d]++
			ls.freeData = append(ls.freeData, uint32(d))
		}
	}
	if ls.prev >= 0 {
		g.layers[ls.prev].next = ls.next
	} else {
		g.firstLayer = ls.next
	}
	if ls.next >= 0 {
		g.layers[ls.next].prev = ls.prev
	} else {
		g.lastLayer = ls.prev
	}
	ls.prev, ls.next = -1, -1
	ls.gen++
	g.freeLayers = append(g.freeLayers, l.ID)
	g.layerCount--
}

// Caps returns the layer's capability bits.
func (g *Graph) Caps(l LayerHandle) LayerCaps {
	g.mustLayer(l)
	return g.layers[l.ID].caps
}

// CreateData allocates a data slot on the layer, attached to the node.
// The slot index is the data's stable identity: renderers address their
// payloads (uniform blocks, glyph runs, hit shapes) by it, and ordering
// among one node's data on one layer follows it.
func (g *Graph) CreateData(l LayerHandle, n Handle) DataHandle {
	g.mustLayer(l)
	g.mustNode(n)
	ls := &g.layers[l.ID]
	if fn := len(ls.freeData); fn > 0 {
		slot := ls.freeData[fn-1]
		ls.freeData = ls.freeData[:fn-1]
		ls.dataNode[slot] = n
		return DataHandle{ID: slot, Gen: ls.dataGens[slot]}
	}
	slot := uint32(len(ls.dataNode))
	ls.dataNode = append(ls.dataNode, n)
	ls.dataGens = append(ls.dataGens, 1)
	return DataHandle{ID: slot, Gen: 1}
}

// FreeData detaches and releases a data slot.
func (g *Graph) FreeData(l LayerHandle, d DataHandle) {
	g.mustData(l, d)
	ls := &g.layers[l.ID]
	ls.dataNode[d.ID] = Handle{}
	ls.dataGens[d.ID]++
	ls.freeData = append(ls.freeData, d.ID)
}

// RebindData attaches an existing data slot to a different node.
func (g *Graph) RebindData(l LayerHandle, d DataHandle, n Handle) {
	g.mustData(l, d)
	g.mustNode(n)
	g.layers[l.ID].dataNode[d.ID] = n
}

// DataNode returns the node a data slot is attached to. The second
// result is false when the node has since been freed; such data is
// skipped by the frame passes until rebound or freed.
func (g *Graph) DataNode(l LayerHandle, d DataHandle) (Handle, bool) {
	g.mustData(l, d)
	n := g.layers[l.ID].dataNode[d.ID]
	return n, g.Alive(n)
}
