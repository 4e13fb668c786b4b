package scene

// CullClips walks the visible order once and writes the per-node-id
// visibility bitset. The clip stack is seeded with the viewport, so the
// screen edge culls exactly like any Clip node.
//
// Every node is tested against the top-of-stack rect with the half-open
// overlap rule (touching edges do not overlap); its bit records its own
// verdict. Non-clip nodes advance one slot no matter the verdict;
// descendants of an invisible non-clip node still get tested, since
// children may overflow their parent. Clip nodes are stricter: a visible
// one pushes the intersected rect over its subtree, an invisible one
// (including any zero-area Clip rect) skips its subtree wholesale,
// leaving those bits clear. Frames pop as soon as the walk reaches their
// end slot.
func (p *Pass) CullClips(g *Graph, viewport Rect) {
	p.check(g)
	p.visBits.Clear()
	stack := p.clipStack
	stack[0] = clipFrame{clip: viewport, end: int32(p.visLen)}
	sp := 1

	offsets, sizes, flags := g.offsets, g.sizes, g.flags
	end := int32(p.visLen)
	for i := int32(0); i < end; {
		id := p.visNodes[i]
		rect := Rect{Min: offsets[id], Max: offsets[id].Add(sizes[id])}
		visible := true
		if sp > 0 {
			visible = stack[sp-1].clip.Overlaps(rect)
		}
		if flags[id]&FlagClip != 0 {
			if sizes[id].X <= 0 || sizes[id].Y <= 0 {
				visible = false
			}
			if visible {
				p.visBits.Set(id)
				if sp > 0 {
					rect = stack[sp-1].clip.Intersect(rect)
				}
				stack[sp] = clipFrame{clip: rect, end: i + p.visCounts[i] + 1}
				sp++
				i++
			} else {
				i += p.visCounts[i] + 1
			}
		} else {
			if visible {
				p.visBits.Set(id)
			}
			i++
		}
		for sp > 0 && stack[sp-1].end == i {
			sp--
		}
	}
}
