package scene

// noNode marks an order slot that references nothing.
const noNode = ^uint32(0)

// The stacking order is a circular singly-linked list over order slots,
// walked from firstOrder. Walk order is paint order: the first entry is
// painted first (bottom), the last entry ends up on top. Mutations are
// O(length) where a predecessor is needed; the frame passes only ever
// walk forward once.

// IsTopLevel reports whether the node is a member of the stacking order.
func (g *Graph) IsTopLevel(h Handle) bool {
	g.mustNode(h)
	return g.isStacked(h.ID)
}

// Raise places the node at the top of the stacking order, adding it if
// absent. A nested node is detached from its parent first.
func (g *Graph) Raise(h Handle) {
	g.mustNode(h)
	g.Detach(h)
	slot := g.allocOrder(h.ID)
	if g.firstOrder < 0 {
		g.orderNext[slot] = slot
		g.firstOrder = int32(slot)
	} else {
		last := g.orderPred(uint32(g.firstOrder))
		g.orderNext[last] = slot
		g.orderNext[slot] = uint32(g.firstOrder)
	}
	g.parentOrOrder[h.ID] = Handle{ID: slot}
}

// Lower places the node at the bottom of the stacking order, adding it
// if absent. A nested node is detached from its parent first.
func (g *Graph) Lower(h Handle) {
	g.mustNode(h)
	g.Raise(h)
	// The new top slot becomes the first entry, which is the bottom.
	g.firstOrder = int32(g.parentOrOrder[h.ID].ID)
}

// InsertAbove places the node immediately above ref in the stacking
// order. ref must be top-level.
func (g *Graph) InsertAbove(h, ref Handle) {
	g.mustNode(h)
	g.mustNode(ref)
	if h == ref {
		panic("scene: inserting a node above itself")
	}
	if !g.isStacked(ref.ID) {
		panic("scene: insert reference is not in the stacking order")
	}
	g.Detach(h)
	slot := g.allocOrder(h.ID)
	refSlot := g.parentOrOrder[ref.ID].ID
	g.orderNext[slot] = g.orderNext[refSlot]
	g.orderNext[refSlot] = slot
	g.parentOrOrder[h.ID] = Handle{ID: slot}
}

// Withdraw removes the node from the stacking order, leaving it detached.
func (g *Graph) Withdraw(h Handle) {
	g.mustNode(h)
	if !g.isStacked(h.ID) {
		panic("scene: withdrawing a node that is not in the stacking order")
	}
	g.unlinkOrder(h.ID)
	g.parentOrOrder[h.ID] = Handle{}
}

// StackingOrder appends the stacked nodes to dst bottom to top and
// returns the extended slice.
func (g *Graph) StackingOrder(dst []Handle) []Handle {
	if g.firstOrder < 0 {
		return dst
	}
	first := uint32(g.firstOrder)
	for cur := first; ; {
		id := g.orderNode[cur]
		dst = append(dst, Handle{ID: id, Gen: g.nodeGens[id]})
		cur = g.orderNext[cur]
		if cur == first {
			return dst
		}
	}
}

// ===== internals =====

// isStacked reports order membership for a node id. parentOrOrder with
// Gen 0 holds an order slot for members and the zero Handle for detached
// nodes; the slot back-reference disambiguates slot 0.
func (g *Graph) isStacked(id uint32) bool {
	p := g.parentOrOrder[id]
	return p.Gen == 0 && p.ID < uint32(len(g.orderNode)) && g.orderNode[p.ID] == id
}

// allocOrder takes an order slot for the node, recycling freed slots.
func (g *Graph) allocOrder(id uint32) uint32 {
	if n := len(g.freeOrders); n > 0 {
		slot := g.freeOrders[n-1]
		g.freeOrders = g.freeOrders[:n-1]
		g.orderNode[slot] = id
		return slot
	}
	slot := uint32(len(g.orderNode))
	g.orderNode = append(g.orderNode, id)
	g.orderNext = append(g.orderNext, slot)
	g.orderGens = append(g.orderGens, 1)
	return slot
}

// orderPred walks the circle to the predecessor of slot.
func (g *Graph) orderPred(slot uint32) uint32 {
	cur := slot
	for g.orderNext[cur] != slot {
		cur = g.orderNext[cur]
	}
	return cur
}

// unlinkOrder removes the node's order slot from the circle and frees it.
func (g *Graph) unlinkOrder(id uint32) {
	slot := g.parentOrOrder[id].ID
	pred := g.orderPred(slot)
	if pred == slot {
		g.firstOrder = -1
	} else {
		g.orderNext[pred] = g.orderNext[slot]
		if g.firstOrder == int32(slot) {
			g.firstOrder = int32(g.orderNext[slot])
		}
	}
	g.orderNode[slot] = noNode
	g.orderGens[slot]++
	g.freeOrders = append(g.freeOrders, slot)
}
