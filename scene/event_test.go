package scene

import (
	"math/rand"
	"testing"
)

func (s *batchScene) runEvents(t *testing.T) *Pass {
	t.Helper()
	p := s.run(t)
	p.OrderEvents(s.g)
	return p
}

func TestOrderEventsTopmostFirst(t *testing.T) {
	s := buildBatchScene()
	p := s.runEvents(t)

	tests := []struct {
		name string
		node Handle
		want []EventRef
	}{
		{"w1", s.w1, []EventRef{{s.l3.ID, 0}}},
		{"c1", s.c1, []EventRef{{s.l2.ID, 0}}},
		// w2 carries data on both event layers; candidates come back
		// last layer first, and within l3 slot 2 before slot 1.
		{"w2", s.w2, []EventRef{{s.l3.ID, 2}, {s.l3.ID, 1}, {s.l2.ID, 1}}},
		{"c2 no data", s.c2, nil},
		{"c3 culled", s.c3, nil},
		{"w3 no data", s.w3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.EventRefs(tt.node)
			if len(got) != len(tt.want) {
				t.Fatalf("EventRefs = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("EventRefs[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOrderEventsHiddenNodeHasEmptyWindow(t *testing.T) {
	s := buildBatchScene()
	s.g.SetHidden(s.w2, true)
	p := s.runEvents(t)

	if got := p.EventRefs(s.w2); len(got) != 0 {
		t.Errorf("hidden node has candidates %v", got)
	}
	// w1's subtree is unaffected.
	if got := p.EventRefs(s.c1); len(got) != 1 {
		t.Errorf("EventRefs(c1) = %v, want one candidate", got)
	}
}

func TestOrderEventsWindowsPartition(t *testing.T) {
	// Property: node windows are disjoint, cover [0, total) exactly, and
	// each window reads as the reverse of chain × slot order.
	rng := rand.New(rand.NewSource(71))
	for trial := 0; trial < 30; trial++ {
		g := NewGraph()
		var layers []LayerHandle
		for i := 0; i < 1+rng.Intn(4); i++ {
			caps := LayerDraw
			if rng.Intn(3) > 0 {
				caps |= LayerEvent
			}
			layers = append(layers, g.CreateLayer(caps))
		}
		var nodes []Handle
		for i := 0; i < 1+rng.Intn(30); i++ {
			n := g.CreateNode()
			g.SetOffset(n, Vec2{float32(rng.Intn(120)), float32(rng.Intn(120))})
			g.SetSize(n, Vec2{10, 10})
			if i == 0 || rng.Intn(3) == 0 {
				g.Raise(n)
			} else {
				g.SetParent(n, nodes[rng.Intn(i)])
			}
			for _, l := range layers {
				for rng.Intn(3) == 0 {
					g.CreateData(l, n)
				}
			}
			nodes = append(nodes, n)
		}

		p := NewPass(g)
		p.BuildOrder(g)
		p.BuildVisible(g)
		p.CullClips(g, R(0, 0, 100, 100))
		p.OrderData(g)
		p.OrderEvents(g)

		// Reference: forward chain × ascending slot, per node.
		forward := make(map[uint32][]EventRef)
		total := 0
		for li := g.firstLayer; li >= 0; li = g.layers[li].next {
			ls := &g.layers[li]
			if ls.caps&LayerEvent == 0 {
				continue
			}
			for d, nh := range ls.dataNode {
				if g.Alive(nh) && p.Visible(nh) {
					forward[nh.ID] = append(forward[nh.ID], EventRef{uint32(li), uint32(d)})
					total++
				}
			}
		}

		seen := 0
		for _, n := range nodes {
			got := p.EventRefs(n)
			want := forward[n.ID]
			if len(got) != len(want) {
				t.Fatalf("trial %d node %d: %d candidates, want %d", trial, n.ID, len(got), len(want))
			}
			for i := range got {
				if got[i] != want[len(want)-1-i] {
					t.Fatalf("trial %d node %d: window %v is not the reverse of %v", trial, n.ID, got, want)
				}
			}
			seen += len(got)
		}
		if seen != total || p.Stats().EventRefs != total {
			t.Fatalf("trial %d: windows cover %d refs, want %d", trial, seen, total)
		}
	}
}

func BenchmarkOrderEvents(b *testing.B) {
	g := benchGraph(4096, 8)
	p := NewPass(g)
	p.BuildOrder(g)
	p.BuildVisible(g)
	p.CullClips(g, R(0, 0, 1920, 1080))
	p.OrderData(g)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.OrderEvents(g)
	}
}
