package scene

// BuildOrder computes the breadth-first propagation order into Order():
// order[0] is the -1 sentinel for the virtual root; every node slot
// follows exactly once, parents before children, siblings contiguous in
// slot order. Top-level, detached, and free slots all count as children
// of the virtual root, so the pass never faults on unused slots and the
// output length is always NodeSlots+1.
//
// Two phases. First a counting sort groups child ids by virtual parent
// (slot 0 is the virtual root, slot id+1 is node id). Then the grouped
// array doubles as the BFS queue: a read cursor chases the write cursor
// through order itself, appending each dequeued entry's bucket.
func (p *Pass) BuildOrder(g *Graph) {
	p.check(g)
	n := p.nodeSlots
	cnt := p.bucketCnt[:n+1]
	cur := p.bucketCur[:n+1]
	for i := range cnt {
		cnt[i] = 0
	}
	for _, h := range g.parentOrOrder {
		cnt[virtualParent(h)]++
	}
	sum := int32(0)
	for i := range cur {
		cur[i] = sum
		sum += cnt[i]
	}
	children := p.children[:n]
	for id, h := range g.parentOrOrder {
		vp := virtualParent(h)
		children[cur[vp]] = uint32(id)
		cur[vp]++
	}
	// cur[vp] is now the end of bucket vp; the start is cur[vp]-cnt[vp].

	order := p.order[:n+1]
	order[0] = -1
	w := 1
	for r := 0; r < w; r++ {
		vp := int(order[r]) + 1
		end := cur[vp]
		for i := end - cnt[vp]; i < end; i++ {
			order[w] = int32(children[i])
			w++
		}
	}
}

// virtualParent maps a parentOrOrder entry to its counting-sort bucket.
func virtualParent(h Handle) uint32 {
	if h.Gen == 0 {
		return 0
	}
	return h.ID + 1
}
