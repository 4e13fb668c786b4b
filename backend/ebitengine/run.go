package ebitengine

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/laminaui/lamina"
	"github.com/laminaui/lamina/scene"
)

// Input is the per-tick input snapshot handed to the frame callback.
// Hover is resolved against the previous frame's outputs, which is what
// the cursor was actually seeing.
type Input struct {
	Tick    uint64
	Cursor  scene.Vec2
	Hover   lamina.Hit
	Hovered bool
	Clicked bool // left button went down this tick
}

// FrameFunc runs once per tick, between input sampling and the frame
// passes. Document mutations made here, including SetRel moves, land in
// the same frame.
type FrameFunc func(doc *lamina.Document, in Input) error

// game adapts a document to the ebiten run loop.
type game struct {
	doc      *lamina.Document
	pass     *scene.Pass
	rend     Renderer
	frame    FrameFunc
	w, h     int
	tick     uint64
	ran      bool
	prevDown bool
	stats    bool
}

func (g *game) Update() error {
	g.tick++

	in := Input{Tick: g.tick}
	mx, my := ebiten.CursorPosition()
	in.Cursor = scene.Vec2{X: float32(mx), Y: float32(my)}
	if g.ran {
		in.Hover, in.Hovered = lamina.Pick(g.doc.Graph, g.pass, in.Cursor)
	}
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.Clicked = down && !g.prevDown
	g.prevDown = down

	if g.frame != nil {
		if err := g.frame(g.doc, in); err != nil {
			return err
		}
	}

	g.pass.Resize(g.doc.Graph) // allocates only if the callback grew the graph
	g.pass.Run(g.doc.Graph, g.viewport(), g.doc.Relayout)
	g.ran = true
	return nil
}

// viewport returns the cull rect, which tracks the live window size so
// restacked or animated nodes cull against what is actually on screen.
func (g *game) viewport() scene.Rect {
	return scene.Rect{Max: scene.Vec2{X: float32(g.w), Y: float32(g.h)}}
}

func (g *game) Draw(screen *ebiten.Image) {
	if !g.ran {
		return
	}
	g.rend.Draw(screen, g.doc.Graph, g.pass, g.doc)
	if g.stats {
		s := g.pass.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %.0f  visible %d/%d  quads %d  events %d",
			ebiten.ActualFPS(), s.Visible, s.NodeSlots, g.rend.QuadCount(), s.EventRefs))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.w, g.h = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens a window for the document and drives the frame pipeline
// until the window closes or the frame callback errors. The window
// starts at the configured size, falling back to the document viewport.
func Run(cfg lamina.AppConfig, doc *lamina.Document, frame FrameFunc) error {
	w, h := cfg.Window.Width, cfg.Window.Height
	if w <= 0 || h <= 0 {
		vp := doc.Viewport()
		w, h = int(vp.Max.X), int(vp.Max.Y)
	}
	title := cfg.Window.Title
	if title == "" {
		title = doc.Title
	}
	if title == "" {
		title = "lamina"
	}

	g := &game{
		doc:   doc,
		pass:  scene.NewPass(doc.Graph),
		frame: frame,
		w:     w,
		h:     h,
		stats: cfg.Preview.ShowStats,
	}

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
