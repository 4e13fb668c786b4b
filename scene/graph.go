package scene

// Graph is the retained registry: node slots, the top-level stacking
// order, and the active layer chain with per-layer data slots. Every
// store is a flat arena with a free list and per-slot generations; slots
// are recycled, handles to freed slots go stale.
//
// Graph methods mutate between frames. The frame passes (Pass) only read.
type Graph struct {
	// Node arena. parentOrOrder is the discriminated field: Gen != 0 is
	// a parent node handle; Gen == 0 means top-level (ID is the node's
	// order slot, confirmed by the slot's back-reference) or detached.
	parentOrOrder []Handle
	nodeGens      []uint32
	flags         []Flags
	offsets       []Vec2
	sizes         []Vec2
	freeNodes     []uint32

	// Top-level stacking order: circular singly-linked list over order
	// slots, walked from firstOrder in paint order (bottom to top).
	// firstOrder == -1 means nothing is stacked.
	orderNode  []uint32
	orderNext  []uint32
	orderGens  []uint32
	freeOrders []uint32
	firstOrder int32

	// Layer chain. Slots stay in place when a layer is removed; the
	// chain links are what make a layer active.
	layers     []layerState
	freeLayers []uint32
	firstLayer int32
	lastLayer  int32
	layerCount int
}

// layerState is one layer slot: capability bits, chain links, and the
// layer's data arena. A data slot is attached iff its node handle is
// live; freed data slots hold the zero Handle.
type layerState struct {
	caps LayerCaps
	gen  uint32
	prev int32
	next int32

	dataNode []Handle
	dataGens []uint32
	freeData []uint32
}

// NewGraph returns an empty registry.
func NewGraph() *Graph {
	return &Graph{firstOrder: -1, firstLayer: -1, lastLayer: -1}
}

// Reserve grows the underlying arenas so that the next nodes node slots
// and layers layer slots can be created without reallocation. It never
// shrinks.
func (g *Graph) Reserve(nodes, layers int) {
	if n := len(g.parentOrOrder) + nodes; n > cap(g.parentOrOrder) {
		g.parentOrOrder = append(make([]Handle, 0, n), g.parentOrOrder...)
		g.nodeGens = append(make([]uint32, 0, n), g.nodeGens...)
		g.flags = append(make([]Flags, 0, n), g.flags...)
		g.offsets = append(make([]Vec2, 0, n), g.offsets...)
		g.sizes = append(make([]Vec2, 0, n), g.sizes...)
		g.orderNode = append(make([]uint32, 0, n), g.orderNode...)
		g.orderNext = append(make([]uint32, 0, n), g.orderNext...)
		g.orderGens = append(make([]uint32, 0, n), g.orderGens...)
	}
	if n := len(g.layers) + layers; n > cap(g.layers) {
		g.layers = append(make([]layerState, 0, n), g.layers...)
	}
}

// ===== slot counts =====

// NodeSlots returns the node arena size, free slots included. Pass
// arrays are sized against this.
func (g *Graph) NodeSlots() int { return len(g.parentOrOrder) }

// LiveNodes returns the number of currently allocated nodes.
func (g *Graph) LiveNodes() int { return len(g.parentOrOrder) - len(g.freeNodes) }

// OrderSlots returns the order arena size, free slots included.
func (g *Graph) OrderSlots() int { return len(g.orderNode) }

// LayerSlots returns the layer arena size, removed slots included.
func (g *Graph) LayerSlots() int { return len(g.layers) }

// LayerCount returns the number of layers in the active chain.
func (g *Graph) LayerCount() int { return g.layerCount }

// DataSlots returns the data arena size of a layer, free slots included.
func (g *Graph) DataSlots(l LayerHandle) int {
	g.mustLayer(l)
	return len(g.layers[l.ID].dataNode)
}

// ===== handle validation =====

// Alive reports whether h refers to a live node.
func (g *Graph) Alive(h Handle) bool {
	return h.Gen != 0 && h.ID < uint32(len(g.nodeGens)) && g.nodeGens[h.ID] == h.Gen
}

// NodeByID resolves a node slot index, as found in pass outputs, back to
// a handle. Returns false for free slots and out-of-range ids.
func (g *Graph) NodeByID(id uint32) (Handle, bool) {
	if id >= uint32(len(g.nodeGens)) || g.nodeGens[id]&1 == 0 {
		return Handle{}, false
	}
	return Handle{ID: id, Gen: g.nodeGens[id]}, true
}

// LayerAlive reports whether l refers to a live layer.
func (g *Graph) LayerAlive(l LayerHandle) bool {
	return l.Gen != 0 && l.ID < uint32(len(g.layers)) && g.layers[l.ID].gen == l.Gen
}

// DataAlive reports whether d refers to a live data slot of layer l.
func (g *Graph) DataAlive(l LayerHandle, d DataHandle) bool {
	if !g.LayerAlive(l) {
		return false
	}
	ls := &g.layers[l.ID]
	return d.Gen != 0 && d.ID < uint32(len(ls.dataGens)) && ls.dataGens[d.ID] == d.Gen
}

func (g *Graph) mustNode(h Handle) {
	if !g.Alive(h) {
		panic("scene: stale or zero node handle")
	}
}

func (g *Graph) mustLayer(l LayerHandle) {
	if !g.LayerAlive(l) {
		panic("scene: stale or zero layer handle")
	}
}

func (g *Graph) mustData(l LayerHandle, d DataHandle) {
	g.mustLayer(l)
	ls := &g.layers[l.ID]
	if d.Gen == 0 || d.ID >= uint32(len(ls.dataGens)) || ls.dataGens[d.ID] != d.Gen {
		panic("scene: stale or zero data handle")
	}
}
