package scene

// BuildVisible computes the depth-first visible order: walks the
// stacking order once, expanding each non-hidden top-level node with an
// explicit-stack DFS over the parent→children buckets. VisibleNodes
// holds the emitted node ids; VisibleCounts holds, per emitted node, the
// number of following slots its subtree occupies, written when the
// node's frame pops.
//
// Hidden nodes are skipped outright: not emitted, subtree never entered,
// siblings unaffected. The buckets here exclude top-level members (those
// come from the stacking order), so unlike BuildOrder the child key
// space is plain node ids.
func (p *Pass) BuildVisible(g *Graph) {
	p.check(g)
	n := p.nodeSlots
	cnt := p.bucketCnt[:n]
	cur := p.bucketCur[:n]
	for i := range cnt {
		cnt[i] = 0
	}
	for _, h := range g.parentOrOrder {
		if h.Gen != 0 {
			cnt[h.ID]++
		}
	}
	sum := int32(0)
	for i := range cur {
		cur[i] = sum
		sum += cnt[i]
	}
	children := p.children[:n]
	for id, h := range g.parentOrOrder {
		if h.Gen != 0 {
			children[cur[h.ID]] = uint32(id)
			cur[h.ID]++
		}
	}

	p.visLen = 0
	p.topCount = 0
	if g.firstOrder < 0 {
		return
	}
	flags := g.flags
	stack := p.dfsStack
	out := int32(0)
	first := uint32(g.firstOrder)
	for os := first; ; {
		id := g.orderNode[os]
		if flags[id]&FlagHidden == 0 {
			p.topStarts[p.topCount] = out
			p.topCount++
			p.visNodes[out] = id
			stack[0] = dfsFrame{slot: out, cursor: cur[id] - cnt[id], end: cur[id]}
			out++
			sp := 1
			for sp > 0 {
				f := &stack[sp-1]
				if f.cursor < f.end {
					c := children[f.cursor]
					f.cursor++
					if flags[c]&FlagHidden == 0 {
						p.visNodes[out] = c
						stack[sp] = dfsFrame{slot: out, cursor: cur[c] - cnt[c], end: cur[c]}
						out++
						sp++
					}
				} else {
					p.visCounts[f.slot] = out - f.slot - 1
					sp--
				}
			}
		}
		os = g.orderNext[os]
		if os == first {
			break
		}
	}
	p.visLen = int(out)
}
