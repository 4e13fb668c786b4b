package scene

// OrderData walks the active layer chain and schedules every data slot
// attached to a visible node. Per layer, a counting sort groups the
// layer's data ids by node (stable in slot order); replaying the visible
// order then appends (data, node) pairs to the shared Updates list, so
// each layer owns one contiguous run in visible order. Event-capable
// layers accumulate their per-node counts for OrderEvents on the way.
//
// Draw-capable layers additionally split their run at top-level-node
// boundaries into the dense draw table: exactly one DrawRange per
// (visible top-level node × draw layer), zero-size ranges included so
// the table stays addressable as a grid until CompactDraws. The table is
// laid out top-level-major, which is paint order once compacted.
func (p *Pass) OrderData(g *Graph) {
	p.check(g)
	for i := range p.dataCnt {
		p.dataCnt[i] = 0
		p.eventCnt[i] = 0
	}
	for i := range p.layerRuns {
		p.layerRuns[i] = span{}
	}
	p.updateLen = 0
	p.rangeLen = 0

	drawCols := 0
	for li := g.firstLayer; li >= 0; li = g.layers[li].next {
		if g.layers[li].caps&LayerDraw != 0 {
			drawCols++
		}
	}

	visNodes := p.visNodes[:p.visLen]
	cnt, cur := p.dataCnt, p.dataCur
	w := int32(0)
	col := 0
	for li := g.firstLayer; li >= 0; li = g.layers[li].next {
		ls := &g.layers[li]
		for _, nh := range ls.dataNode {
			if nh.Gen != 0 && nh.Gen == g.nodeGens[nh.ID] && p.visBits.Get(nh.ID) {
				cnt[nh.ID]++
			}
		}
		// Offsets only need to cover visible nodes; everything counted
		// above is visible by construction.
		sum := int32(0)
		for _, id := range visNodes {
			cur[id] = sum
			sum += cnt[id]
		}
		for d, nh := range ls.dataNode {
			if nh.Gen != 0 && nh.Gen == g.nodeGens[nh.ID] && p.visBits.Get(nh.ID) {
				p.dataIDs[cur[nh.ID]] = uint32(d)
				cur[nh.ID]++
			}
		}
		// cur[id] is now the end of id's group; the start is cur[id]-cnt[id].

		isEvent := ls.caps&LayerEvent != 0
		isDraw := ls.caps&LayerDraw != 0
		layerStart := w
		for t := 0; t < p.topCount; t++ {
			groupStart := w
			slot := p.topStarts[t]
			for s := slot; s < slot+p.visCounts[slot]+1; s++ {
				id := visNodes[s]
				c := cnt[id]
				if c == 0 {
					continue
				}
				for k := cur[id] - c; k < cur[id]; k++ {
					p.updates[w] = DataUpdate{Data: p.dataIDs[k], Node: id}
					w++
				}
				if isEvent {
					p.eventCnt[id] += c
				}
				cnt[id] = 0 // restore the all-zero invariant for the next layer
			}
			if isDraw {
				p.ranges[t*drawCols+col] = DrawRange{
					Layer:  uint32(li),
					Offset: groupStart,
					Size:   w - groupStart,
				}
			}
		}
		p.layerRuns[li] = span{start: layerStart, end: w}
		if isDraw {
			col++
		}
	}
	p.updateLen = int(w)
	p.rangeLen = p.topCount * drawCols
}

// CompactDraws removes zero-size entries from the draw table in place,
// preserving order, and shrinks DrawRanges to the survivors. Idempotent.
func (p *Pass) CompactDraws() {
	w := 0
	for r := 0; r < p.rangeLen; r++ {
		if p.ranges[r].Size != 0 {
			p.ranges[w] = p.ranges[r]
			w++
		}
	}
	p.rangeLen = w
}
