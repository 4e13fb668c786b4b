package scene

// OrderEvents lays out the per-node event candidate windows from the
// counts OrderData accumulated. One prefix sum turns the counts into
// end-exclusive windows over a single shared array; the fill then writes
// through decrementing cursors, which reverses iteration order inside
// each window. Iterating layers first→last and data slots ascending
// therefore lands every window in topmost-first order: last layer in the
// chain first, highest data slot first within a layer.
//
// EventRefs(h) exposes a node's window. Hit testing walks candidates in
// stored order and takes the first hit.
func (p *Pass) OrderEvents(g *Graph) {
	p.check(g)
	sum := int32(0)
	for id := 0; id < p.nodeSlots; id++ {
		sum += p.eventCnt[id]
		p.eventEnd[id] = sum
		p.eventCur[id] = sum
	}
	p.eventLen = int(sum)

	for li := g.firstLayer; li >= 0; li = g.layers[li].next {
		ls := &g.layers[li]
		if ls.caps&LayerEvent == 0 {
			continue
		}
		for d, nh := range ls.dataNode {
			if nh.Gen != 0 && nh.Gen == g.nodeGens[nh.ID] && p.visBits.Get(nh.ID) {
				p.eventCur[nh.ID]--
				p.eventRefs[p.eventCur[nh.ID]] = EventRef{Layer: uint32(li), Data: uint32(d)}
			}
		}
	}
	// Every cursor has walked back to its window start, which is what
	// EventRefs slices against.
}
