package scene

// debugChecks enables the expensive structural validations (child scans
// on free). Off by default; the frame passes never consult it.
var debugChecks bool

// SetDebugChecks toggles expensive registry validation. Useful in tests
// and development builds; leave off in production.
func SetDebugChecks(on bool) { debugChecks = on }

// CreateNode allocates a node slot and returns its handle. New nodes are
// detached: not parented, not in the stacking order, flags clear, zero
// geometry. Slots are recycled from freed nodes before the arena grows.
//
// Generations advance on free and again on reuse, so a slot's generation
// is odd exactly while the slot is live. NodeByID relies on that.
func (g *Graph) CreateNode() Handle {
	if n := len(g.freeNodes); n > 0 {
		slot := g.freeNodes[n-1]
		g.freeNodes = g.freeNodes[:n-1]
		g.parentOrOrder[slot] = Handle{}
		g.flags[slot] = 0
		g.offsets[slot] = Vec2{}
		g.sizes[slot] = Vec2{}
		g.nodeGens[slot]++
		return Handle{ID: slot, Gen: g.nodeGens[slot]}
	}
	slot := uint32(len(g.parentOrOrder))
	g.parentOrOrder = append(g.parentOrOrder, Handle{})
	g.nodeGens = append(g.nodeGens, 1)
	g.flags = append(g.flags, 0)
	g.offsets = append(g.offsets, Vec2{})
	g.sizes = append(g.sizes, Vec2{})
	return Handle{ID: slot, Gen: 1}
}

// FreeNode releases a node slot and bumps its generation, making every
// retained handle to it stale. The node must not be parented; children
// must have been re-rooted by the caller beforehand (checked only under
// SetDebugChecks). A top-level node is withdrawn from the stacking order
// automatically.
func (g *Graph) FreeNode(h Handle) {
	g.mustNode(h)
	if g.parentOrOrder[h.ID].Gen != 0 {
		panic("scene: freeing a parented node, detach it first")
	}
	if debugChecks {
		for _, p := range g.parentOrOrder {
			if p == h {
				panic("scene: freeing a node that still has children")
			}
		}
	}
	if g.isStacked(h.ID) {
		g.unlinkOrder(h.ID)
	}
	g.parentOrOrder[h.ID] = Handle{}
	g.nodeGens[h.ID]++
	g.freeNodes = append(g.freeNodes, h.ID)
}

// Parent returns the node's parent handle, or false if the node is
// top-level or detached.
func (g *Graph) Parent(h Handle) (Handle, bool) {
	g.mustNode(h)
	p := g.parentOrOrder[h.ID]
	if p.Gen == 0 {
		return Handle{}, false
	}
	return p, true
}

// SetParent makes child a child of parent, detaching it from its current
// parent or from the stacking order first. Creating a cycle panics.
func (g *Graph) SetParent(child, parent Handle) {
	g.mustNode(child)
	g.mustNode(parent)
	if child == parent {
		panic("scene: parenting a node to itself")
	}
	for p := g.parentOrOrder[parent.ID]; p.Gen != 0; p = g.parentOrOrder[p.ID] {
		if p.ID == child.ID {
			panic("scene: parenting would create a cycle")
		}
	}
	g.Detach(child)
	g.parentOrOrder[child.ID] = parent
}

// Detach removes the node from its parent or from the stacking order,
// leaving it alive but unreachable by the frame passes.
func (g *Graph) Detach(h Handle) {
	g.mustNode(h)
	if g.isStacked(h.ID) {
		g.unlinkOrder(h.ID)
	}
	g.parentOrOrder[h.ID] = Handle{}
}

// ===== flags =====

// Hidden reports the node's Hidden flag.
func (g *Graph) Hidden(h Handle) bool {
	g.mustNode(h)
	return g.flags[h.ID]&FlagHidden != 0
}

// SetHidden sets or clears the Hidden flag. A hidden node and its whole
// subtree drop out of the visible order on the next pass.
func (g *Graph) SetHidden(h Handle, on bool) {
	g.mustNode(h)
	if on {
		g.flags[h.ID] |= FlagHidden
	} else {
		g.flags[h.ID] &^= FlagHidden
	}
}

// Clip reports the node's Clip flag.
func (g *Graph) Clip(h Handle) bool {
	g.mustNode(h)
	return g.flags[h.ID]&FlagClip != 0
}

// SetClip sets or clears the Clip flag. A clipping node restricts its
// subtree to its own rect during culling.
func (g *Graph) SetClip(h Handle, on bool) {
	g.mustNode(h)
	if on {
		g.flags[h.ID] |= FlagClip
	} else {
		g.flags[h.ID] &^= FlagClip
	}
}

// ===== geometry =====
//
// Offsets are absolute screen positions. The registry only stores them;
// computing them from layout rules is the caller's job, done between
// BuildOrder and BuildVisible using the propagation order.

// Offset returns the node's absolute position.
func (g *Graph) Offset(h Handle) Vec2 {
	g.mustNode(h)
	return g.offsets[h.ID]
}

// SetOffset stores the node's absolute position.
func (g *Graph) SetOffset(h Handle, o Vec2) {
	g.mustNode(h)
	g.offsets[h.ID] = o
}

// Size returns the node's extent.
func (g *Graph) Size(h Handle) Vec2 {
	g.mustNode(h)
	return g.sizes[h.ID]
}

// SetSize stores the node's extent.
func (g *Graph) SetSize(h Handle, s Vec2) {
	g.mustNode(h)
	g.sizes[h.ID] = s
}

// NodeRect returns the node's absolute rect.
func (g *Graph) NodeRect(h Handle) Rect {
	g.mustNode(h)
	o, s := g.offsets[h.ID], g.sizes[h.ID]
	return Rect{Min: o, Max: o.Add(s)}
}
