package scene

// Pass owns every scratch and output array of the frame pipeline. One
// Pass serves one Graph at a time; Resize snapshots the graph's slot
// counts and (re)allocates, after which a whole frame runs without
// allocating. Stages panic if the graph has grown since the last Resize.
//
// Outputs stay valid until the stage that produced them runs again.
type Pass struct {
	// sizing snapshot from the last Resize
	nodeSlots  int
	orderSlots int
	layerSlots int
	dataSlots  []int

	// breadth-first propagation order
	order     []int32  // nodeSlots+1, order[0] == -1
	bucketCnt []int32  // nodeSlots+1 child counts, keyed by virtual parent
	bucketCur []int32  // fill cursors; bucket p = children[cur[p]-cnt[p]:cur[p]]
	children  []uint32 // nodeSlots bucketed child ids

	// depth-first visible order
	visNodes  []uint32
	visCounts []int32 // subtree slots after each visible node
	visLen    int
	topStarts []int32 // visible-order slot of each top-level node
	topCount  int
	dfsStack  []dfsFrame

	// clip culling
	visBits   Bitset
	clipStack []clipFrame

	// data ordering and draw batching
	dataCnt   []int32  // per-node data counts for the layer in flight
	dataCur   []int32  // per-node cursors into dataIDs
	dataIDs   []uint32 // one layer's data ids grouped by node
	updates   []DataUpdate
	updateLen int
	layerRuns []span
	ranges    []DrawRange // dense topCount × drawLayers table, then compacted
	rangeLen  int

	// event ordering
	eventCnt  []int32 // per-node counts accumulated across event layers
	eventEnd  []int32 // end-exclusive candidate window per node
	eventCur  []int32 // fill cursor; window start once OrderEvents is done
	eventRefs []EventRef
	eventLen  int
}

// dfsFrame tracks one entered node during the visibility walk.
type dfsFrame struct {
	slot   int32 // the node's index in visNodes
	cursor int32 // next child to consider
	end    int32 // end of the node's child bucket
}

// clipFrame is one active clip rect and the visible-order slot at which
// it expires.
type clipFrame struct {
	clip Rect
	end  int32
}

// span is a half-open [start, end) window into updates.
type span struct {
	start, end int32
}

// DataUpdate is one scheduled data refresh: the data slot and the node
// it is attached to, in draw order within its layer's run.
type DataUpdate struct {
	Data, Node uint32
}

// DrawRange is one layer's contiguous window of Updates for one
// top-level node. Ranges are emitted dense (zero Size kept) and
// compacted by CompactDraws.
type DrawRange struct {
	Layer        uint32
	Offset, Size int32
}

// EventRef is one event candidate: a data slot on an event-capable
// layer. Candidates for a node are ordered topmost first.
type EventRef struct {
	Layer, Data uint32
}

// Stats summarizes the most recent frame for debug surfaces.
type Stats struct {
	NodeSlots  int
	Visible    int
	TopLevel   int
	Updates    int
	DrawRanges int
	EventRefs  int
}

// NewPass returns a Pass sized for the graph's current slot counts.
func NewPass(g *Graph) *Pass {
	p := &Pass{}
	p.Resize(g)
	return p
}

// Resize re-snapshots the graph's slot counts and grows every scratch
// and output array to match. Call it after mutations that created slots;
// calling it every frame is fine, it only allocates on growth. Must not
// be called mid-frame.
func (p *Pass) Resize(g *Graph) {
	n := g.NodeSlots()
	p.nodeSlots = n
	p.orderSlots = g.OrderSlots()
	p.layerSlots = g.LayerSlots()

	p.dataSlots = sized(p.dataSlots, p.layerSlots)
	totalData, maxLayerData, eventData := 0, 0, 0
	for i := range g.layers {
		ds := len(g.layers[i].dataNode)
		p.dataSlots[i] = ds
		totalData += ds
		maxLayerData = max(maxLayerData, ds)
		if g.layers[i].caps&LayerEvent != 0 {
			eventData += ds
		}
	}

	p.order = sized(p.order, n+1)
	p.bucketCnt = sized(p.bucketCnt, n+1)
	p.bucketCur = sized(p.bucketCur, n+1)
	p.children = sized(p.children, n)

	p.visNodes = sized(p.visNodes, n)
	p.visCounts = sized(p.visCounts, n)
	p.visLen = 0
	p.topStarts = sized(p.topStarts, p.orderSlots)
	p.topCount = 0
	p.dfsStack = sized(p.dfsStack, n)

	if p.visBits.Len() < n {
		p.visBits = newBitset(n)
	}
	p.clipStack = sized(p.clipStack, n+1)

	p.dataCnt = sized(p.dataCnt, n)
	p.dataCur = sized(p.dataCur, n)
	p.dataIDs = sized(p.dataIDs, maxLayerData)
	p.updates = sized(p.updates, totalData)
	p.updateLen = 0
	p.layerRuns = sized(p.layerRuns, p.layerSlots)
	p.ranges = sized(p.ranges, p.orderSlots*p.layerSlots)
	p.rangeLen = 0

	p.eventCnt = sized(p.eventCnt, n)
	p.eventEnd = sized(p.eventEnd, n)
	p.eventCur = sized(p.eventCur, n)
	p.eventRefs = sized(p.eventRefs, eventData)
	p.eventLen = 0

	// Counting scratch must start clean; afterwards the stages restore
	// it behind themselves.
	for i := range p.dataCnt {
		p.dataCnt[i] = 0
		p.eventCnt[i] = 0
	}
}

// sized returns s with length n, reallocating only on growth past the
// retained capacity.
func sized[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}

// check validates that the pass still matches the graph's slot counts.
// Stages abort on mismatch rather than writing partial output.
func (p *Pass) check(g *Graph) {
	if p.nodeSlots != g.NodeSlots() || p.orderSlots != g.OrderSlots() || p.layerSlots != g.LayerSlots() {
		panic("scene: pass out of date with graph, call Resize")
	}
	for i := range g.layers {
		if p.dataSlots[i] != len(g.layers[i].dataNode) {
			panic("scene: pass out of date with graph, call Resize")
		}
	}
}

// Run executes the whole frame pipeline. The layout hook, if non-nil,
// runs between the propagation order and the visibility walk; it
// receives the order and must store absolute offsets through the graph
// before returning. viewport seeds the clip stack, so off-screen
// top-level nodes cull like anything else.
func (p *Pass) Run(g *Graph, viewport Rect, layout func(*Graph, []int32)) {
	p.BuildOrder(g)
	if layout != nil {
		layout(g, p.Order())
	}
	p.BuildVisible(g)
	p.CullClips(g, viewport)
	p.OrderData(g)
	p.CompactDraws()
	p.OrderEvents(g)
}

// ===== outputs =====

// Order returns the propagation order: a leading -1 sentinel for the
// virtual root, then every node slot exactly once, parents before
// children, siblings contiguous in slot order. Free slots appear too
// (under the sentinel); callers iterating the order must treat them as
// inert.
func (p *Pass) Order() []int32 { return p.order }

// VisibleNodes returns node ids in depth-first visible order: each
// top-level node in stacking order, each followed by its non-hidden
// subtree.
func (p *Pass) VisibleNodes() []uint32 { return p.visNodes[:p.visLen] }

// VisibleCounts returns, parallel to VisibleNodes, how many following
// slots each node's subtree occupies.
func (p *Pass) VisibleCounts() []int32 { return p.visCounts[:p.visLen] }

// VisibleLen returns the visible-order length.
func (p *Pass) VisibleLen() int { return p.visLen }

// TopLevelCount returns the number of non-hidden top-level nodes in the
// visible order.
func (p *Pass) TopLevelCount() int { return p.topCount }

// VisibleSet returns the per-node-id visibility bitset written by
// CullClips. A set bit means the node passed its own clip test.
func (p *Pass) VisibleSet() Bitset { return p.visBits }

// Visible reports the culling verdict for a node. The handle must be
// live; the pass does not re-validate generations.
func (p *Pass) Visible(h Handle) bool { return p.visBits.Get(h.ID) }

// Updates returns every (data, node) pair scheduled this frame, grouped
// contiguously per layer in chain order, within a layer in visible node
// order, within a node in data slot order.
func (p *Pass) Updates() []DataUpdate { return p.updates[:p.updateLen] }

// LayerRun returns the half-open window of Updates belonging to the
// layer. Zero for layers outside the active chain.
func (p *Pass) LayerRun(l LayerHandle) (start, end int) {
	s := p.layerRuns[l.ID]
	return int(s.start), int(s.end)
}

// DrawRanges returns the draw table: one range per visible top-level
// node per draw-capable layer until CompactDraws drops the empty ones.
// Order is paint order: bottom-to-top top-level node, outer; layer chain
// order, inner.
func (p *Pass) DrawRanges() []DrawRange { return p.ranges[:p.rangeLen] }

// EventRefs returns the node's event candidates, topmost first: layers
// in reverse chain order, and within a layer descending data slot. The
// handle must be live.
func (p *Pass) EventRefs(h Handle) []EventRef {
	return p.eventRefs[p.eventCur[h.ID]:p.eventEnd[h.ID]]
}

// Stats reports counters from the most recent frame.
func (p *Pass) Stats() Stats {
	return Stats{
		NodeSlots:  p.nodeSlots,
		Visible:    p.visLen,
		TopLevel:   p.topCount,
		Updates:    p.updateLen,
		DrawRanges: p.rangeLen,
		EventRefs:  p.eventLen,
	}
}
