package ebitengine

import (
	"testing"

	"github.com/laminaui/lamina"
	"github.com/laminaui/lamina/scene"
)

// quadScene interleaves two draw layers across two top-level nodes and
// adds an event-only hit area plus an off-screen panel.
const quadScene = `
title = "quads"

[viewport]
width = 100
height = 100

[[layer]]
name = "fills"
draw = true

[[layer]]
name = "accents"
draw = true
event = true

[[node]]
name = "back"
class = "bg-[#102030] w-[100] h-[100]"

[[node]]
name = "badge"
parent = "back"
layer = "accents"
class = "bg-[#ff0000] w-[20] h-[10]"
x = 5
y = 5

[[node]]
name = "hitbox"
parent = "back"
layer = "accents"
w = 100
h = 100

[[node]]
name = "front"
class = "bg-[#00ff00] w-[40] h-[40]"
x = 30
y = 30

[[node]]
name = "offscreen"
class = "bg-white w-4 h-4"
x = 500
y = 500
`

func parseQuadScene(t *testing.T) (*lamina.Document, *scene.Pass) {
	t.Helper()
	doc, err := lamina.ParseDocument([]byte(quadScene))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	pass := scene.NewPass(doc.Graph)
	pass.Run(doc.Graph, doc.Viewport(), doc.Relayout)
	return doc, pass
}

func TestAppendQuadsPaintOrder(t *testing.T) {
	doc, pass := parseQuadScene(t)

	got := AppendQuads(nil, doc.Graph, pass, doc)

	// back's accents range paints before front's fills range: the draw
	// table is top-level-major, so a later top-level overdraws every
	// layer of an earlier one. The transparent hitbox and the culled
	// off-screen panel produce no quads.
	want := []Quad{
		{Pos: scene.Vec2{X: 0, Y: 0}, Size: scene.Vec2{X: 100, Y: 100}, Fill: 0x102030ff},
		{Pos: scene.Vec2{X: 5, Y: 5}, Size: scene.Vec2{X: 20, Y: 10}, Fill: 0xff0000ff},
		{Pos: scene.Vec2{X: 30, Y: 30}, Size: scene.Vec2{X: 40, Y: 40}, Fill: 0x00ff00ff},
	}
	if len(got) != len(want) {
		t.Fatalf("AppendQuads() returned %d quads, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("quad[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAppendQuadsReusesBuffer(t *testing.T) {
	doc, pass := parseQuadScene(t)

	first := AppendQuads(nil, doc.Graph, pass, doc)
	second := AppendQuads(first[:0], doc.Graph, pass, doc)

	if len(second) != len(first) {
		t.Fatalf("reused buffer produced %d quads, want %d", len(second), len(first))
	}
	if cap(second) != cap(first) {
		t.Errorf("reuse reallocated: cap %d, want %d", cap(second), cap(first))
	}
}

func TestAppendQuadsKeepsExistingEntries(t *testing.T) {
	doc, pass := parseQuadScene(t)

	dst := []Quad{{Fill: 0xdeadbeef}}
	got := AppendQuads(dst, doc.Graph, pass, doc)

	if len(got) != 4 {
		t.Fatalf("AppendQuads() len = %d, want 4", len(got))
	}
	if got[0].Fill != 0xdeadbeef {
		t.Errorf("existing entry overwritten: %+v", got[0])
	}
}

func TestAppendQuadsSkipsFreedNodes(t *testing.T) {
	doc, pass := parseQuadScene(t)

	// Free a node after the pass ran; its scheduled update must not
	// resurrect through the recycled slot.
	front, _ := doc.Node("front")
	doc.Graph.Detach(front)
	doc.Graph.FreeNode(front)

	got := AppendQuads(nil, doc.Graph, pass, doc)

	if len(got) != 2 {
		t.Fatalf("AppendQuads() returned %d quads, want 2: %+v", len(got), got)
	}
	for _, q := range got {
		if q.Fill == 0x00ff00ff {
			t.Errorf("freed node still produced quad %+v", q)
		}
	}
}

func BenchmarkAppendQuads(b *testing.B) {
	doc, err := lamina.ParseDocument([]byte(quadScene))
	if err != nil {
		b.Fatal(err)
	}
	pass := scene.NewPass(doc.Graph)
	pass.Run(doc.Graph, doc.Viewport(), doc.Relayout)

	var quads []Quad
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		quads = AppendQuads(quads[:0], doc.Graph, pass, doc)
	}
}
