package lamina

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/laminaui/lamina/scene"
)

const testDocument = `
title = "test"

[viewport]
width = 200
height = 120

[[layer]]
name = "panels"
draw = true
event = true

[[layer]]
name = "overlay"
draw = true

[[node]]
name = "root"
class = "bg-slate-800 clip"
x = 10
y = 10
w = 180
h = 100

[[node]]
name = "badge"
parent = "root"
layer = "overlay"
class = "bg-[#f0a] w-[40] h-[20]"
x = 5
y = 5

[[node]]
name = "ghost"
class = "hidden bg-white w-4 h-4"
`

func parseTestDocument(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseDocument([]byte(testDocument))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	return doc
}

func TestParseDocumentStructure(t *testing.T) {
	doc := parseTestDocument(t)

	if doc.Title != "test" {
		t.Errorf("Title = %q, want %q", doc.Title, "test")
	}
	if got, want := doc.Viewport(), scene.R(0, 0, 200, 120); got != want {
		t.Errorf("Viewport = %v, want %v", got, want)
	}

	root, ok := doc.Node("root")
	if !ok {
		t.Fatal("root not found")
	}
	badge, _ := doc.Node("badge")
	ghost, _ := doc.Node("ghost")
	g := doc.Graph

	if p, _ := g.Parent(badge); p != root {
		t.Errorf("badge parent = %v, want root", p)
	}
	if !g.IsTopLevel(root) || !g.IsTopLevel(ghost) || g.IsTopLevel(badge) {
		t.Error("top-level membership wrong")
	}
	if !g.Clip(root) || !g.Hidden(ghost) {
		t.Error("class flags not applied")
	}
	if doc.Name(badge) != "badge" {
		t.Errorf("Name(badge) = %q", doc.Name(badge))
	}
}

func TestParseDocumentLayout(t *testing.T) {
	doc := parseTestDocument(t)
	g := doc.Graph
	root, _ := doc.Node("root")
	badge, _ := doc.Node("badge")

	if got := g.Offset(root); got != (scene.Vec2{X: 10, Y: 10}) {
		t.Errorf("root offset = %v", got)
	}
	// Child offsets are relative in the file, absolute in the graph.
	if got := g.Offset(badge); got != (scene.Vec2{X: 15, Y: 15}) {
		t.Errorf("badge offset = %v", got)
	}
	if got := g.Size(root); got != (scene.Vec2{X: 180, Y: 100}) {
		t.Errorf("root size (explicit w/h) = %v", got)
	}
	if got := g.Size(badge); got != (scene.Vec2{X: 40, Y: 20}) {
		t.Errorf("badge size (from class) = %v", got)
	}
}

func TestParseDocumentLayersAndFills(t *testing.T) {
	doc := parseTestDocument(t)
	g := doc.Graph

	panels, ok := doc.Layer("panels")
	if !ok {
		t.Fatal("panels layer not found")
	}
	overlay, _ := doc.Layer("overlay")

	if got := g.Caps(panels); got != scene.LayerDraw|scene.LayerEvent {
		t.Errorf("panels caps = %v", got)
	}
	if got := g.Caps(overlay); got != scene.LayerDraw {
		t.Errorf("overlay caps = %v", got)
	}

	// root and ghost default to the first layer, badge names overlay.
	if got := g.DataSlots(panels); got != 2 {
		t.Errorf("panels data slots = %d, want 2", got)
	}
	if got := g.DataSlots(overlay); got != 1 {
		t.Errorf("overlay data slots = %d, want 1", got)
	}
	if got := doc.Fill(panels.ID, 0); got != 0x1e293bff {
		t.Errorf("root fill = %#x", uint32(got))
	}
	if got := doc.Fill(overlay.ID, 0); got != 0xff00aaff {
		t.Errorf("badge fill = %#x", uint32(got))
	}
	if got := doc.Fill(9, 9); got != 0 {
		t.Errorf("unknown pair fill = %#x, want 0", uint32(got))
	}
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"node without name", `
[[node]]
class = "bg-white"
`},
		{"duplicate node", `
[[layer]]
name = "l"
draw = true
[[node]]
name = "a"
[[node]]
name = "a"
`},
		{"unknown parent", `
[[node]]
name = "a"
parent = "b"
[[node]]
name = "b"
`},
		{"unknown layer", `
[[layer]]
name = "l"
[[node]]
name = "a"
layer = "missing"
`},
		{"bad class", `
[[layer]]
name = "l"
[[node]]
name = "a"
class = "bg-notacolor"
`},
		{"layer without name", `
[[layer]]
draw = true
`},
		{"duplicate layer", `
[[layer]]
name = "l"
[[layer]]
name = "l"
`},
		{"fill without layers", `
[[node]]
name = "a"
class = "bg-white"
`},
		{"malformed toml", `[[node]
name = "a"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDocument([]byte(tt.body)); err == nil {
				t.Error("ParseDocument succeeded, want error")
			}
		})
	}
}

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte(testDocument), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if doc.Title != "test" {
		t.Errorf("Title = %q", doc.Title)
	}

	if _, err := LoadDocument(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("loading a missing document succeeded")
	}
}

func TestRelayoutMovesSubtrees(t *testing.T) {
	doc := parseTestDocument(t)
	g := doc.Graph
	root, _ := doc.Node("root")
	badge, _ := doc.Node("badge")

	p := scene.NewPass(g)
	doc.SetRel(root, scene.Vec2{X: 30, Y: 40})
	p.Run(g, doc.Viewport(), doc.Relayout)

	if got := g.Offset(root); got != (scene.Vec2{X: 30, Y: 40}) {
		t.Errorf("root offset = %v after relayout", got)
	}
	if got := g.Offset(badge); got != (scene.Vec2{X: 35, Y: 45}) {
		t.Errorf("badge offset = %v, want parent plus rel", got)
	}
	if doc.Rel(badge) != (scene.Vec2{X: 5, Y: 5}) {
		t.Errorf("Rel(badge) = %v", doc.Rel(badge))
	}
}

func TestBuildDocumentInCode(t *testing.T) {
	doc := NewDocument("built", scene.Vec2{X: 200, Y: 120})
	if _, err := doc.AddLayer("panels", scene.LayerDraw|scene.LayerEvent); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}

	root, err := doc.AddNode(NodeSpec{Name: "root", Class: "bg-slate-800 clip", X: 10, Y: 10, W: 180, H: 100})
	if err != nil {
		t.Fatalf("AddNode root: %v", err)
	}
	badge, err := doc.AddNode(NodeSpec{Name: "badge", Parent: "root", Class: "bg-[#f0a] w-[40] h-[20]", X: 5, Y: 5})
	if err != nil {
		t.Fatalf("AddNode badge: %v", err)
	}

	g := doc.Graph
	if got := g.Offset(badge); got != (scene.Vec2{X: 15, Y: 15}) {
		t.Errorf("badge offset = %v, want parent plus rel", got)
	}
	if !g.Clip(root) {
		t.Error("root should clip")
	}
	if h, ok := doc.Node("badge"); !ok || h != badge {
		t.Errorf("Node(badge) = %v, %v", h, ok)
	}
	if doc.Name(badge) != "badge" {
		t.Errorf("Name(badge) = %q", doc.Name(badge))
	}

	panels, _ := doc.Layer("panels")
	if got := doc.Fill(panels.ID, 0); got != 0x1e293bff {
		t.Errorf("Fill(panels, 0) = %#x", got)
	}

	// Built documents run through the pipeline like parsed ones.
	p := scene.NewPass(g)
	p.Run(g, doc.Viewport(), doc.Relayout)
	if s := p.Stats(); s.Visible != 2 || s.Updates != 2 {
		t.Errorf("Stats = %+v, want 2 visible and 2 updates", s)
	}
}

func TestAddNodeErrors(t *testing.T) {
	doc := NewDocument("bad", scene.Vec2{X: 100, Y: 100})
	if _, err := doc.AddLayer("only", scene.LayerDraw); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.AddLayer("only", scene.LayerDraw); err == nil {
		t.Error("duplicate layer accepted")
	}
	if _, err := doc.AddLayer("", scene.LayerDraw); err == nil {
		t.Error("unnamed layer accepted")
	}

	if _, err := doc.AddNode(NodeSpec{Name: "a", Class: "bg-white"}); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		spec NodeSpec
	}{
		{"unnamed", NodeSpec{Class: "bg-white"}},
		{"duplicate", NodeSpec{Name: "a"}},
		{"unknown parent", NodeSpec{Name: "b", Parent: "ghost"}},
		{"unknown layer", NodeSpec{Name: "b", Layer: "ghost"}},
		{"bad class", NodeSpec{Name: "b", Class: "bg-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := doc.AddNode(tt.spec); err == nil {
				t.Errorf("AddNode(%+v) succeeded", tt.spec)
			}
		})
	}
}
