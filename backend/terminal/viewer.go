// Package terminal previews lamina scenes on a tcell screen. The
// document's logical viewport is scaled to the cell grid, one
// background-colored cell per covered region, so the preview shows
// stacking, clipping, and culling without a GPU. Rects thinner than a
// cell can disappear at small terminal sizes.
package terminal

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/laminaui/lamina"
	"github.com/laminaui/lamina/scene"
)

// Viewer drives a document on a tcell screen. The caller owns the
// screen's lifecycle; tests inject a SimulationScreen.
type Viewer struct {
	doc    *lamina.Document
	pass   *scene.Pass
	screen tcell.Screen
	fps    int
	stats  bool

	ran        bool
	haveCursor bool
	cursorX    int
	cursorY    int
}

// NewViewer prepares a viewer on an initialized screen.
func NewViewer(screen tcell.Screen, doc *lamina.Document, cfg lamina.PreviewConfig) *Viewer {
	fps := cfg.TargetFPS
	if fps <= 0 {
		fps = 30
	}
	return &Viewer{
		doc:    doc,
		pass:   scene.NewPass(doc.Graph),
		screen: screen,
		fps:    fps,
		stats:  cfg.ShowStats,
	}
}

// Run repaints at the configured rate until q, escape, or ctrl-c.
// Space raises the bottom top-level node, h toggles the Hidden flag of
// the node under the mouse cursor.
func (v *Viewer) Run() error {
	v.screen.EnableMouse()

	ticker := time.NewTicker(time.Second / time.Duration(v.fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			events <- v.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-events:
			if !v.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.Frame()
		}
	}
}

func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			v.raiseBottom()
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'h':
			v.toggleHidden()
		}
	case *tcell.EventMouse:
		v.cursorX, v.cursorY = ev.Position()
		v.haveCursor = true
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// raiseBottom restacks the bottommost top-level node above everything
// else, cycling the stacking order one step per press.
func (v *Viewer) raiseBottom() {
	if !v.ran || v.pass.VisibleLen() == 0 {
		return
	}
	if h, ok := v.doc.Graph.NodeByID(v.pass.VisibleNodes()[0]); ok {
		v.doc.Graph.Raise(h)
	}
}

// toggleHidden flips the Hidden flag of the node picked under the
// cursor, using the previous frame's outputs.
func (v *Viewer) toggleHidden() {
	if !v.ran {
		return
	}
	pt, ok := v.cursorPoint()
	if !ok {
		return
	}
	hit, ok := lamina.Pick(v.doc.Graph, v.pass, pt)
	if !ok {
		return
	}
	v.doc.Graph.SetHidden(hit.Node, !v.doc.Graph.Hidden(hit.Node))
}

// Frame runs the scene passes and repaints the screen.
func (v *Viewer) Frame() {
	v.pass.Resize(v.doc.Graph)
	v.pass.Run(v.doc.Graph, v.doc.Viewport(), v.doc.Relayout)
	v.ran = true

	v.screen.Clear()
	cols, rows, sx, sy, ok := v.grid()
	if !ok {
		v.screen.Show()
		return
	}

	g := v.doc.Graph
	updates := v.pass.Updates()
	for _, r := range v.pass.DrawRanges() {
		for _, u := range updates[r.Offset : r.Offset+r.Size] {
			fill := v.doc.Fill(r.Layer, u.Data)
			if fill&0xff == 0 {
				continue
			}
			h, ok := g.NodeByID(u.Node)
			if !ok {
				continue
			}
			v.fillCells(g.NodeRect(h), fill, sx, sy, cols, rows)
		}
	}
	if v.stats {
		v.drawStats(rows, cols)
	}
	v.screen.Show()
}

// grid reports the cell area available to the scene and the
// logical-to-cell scale factors.
func (v *Viewer) grid() (cols, rows int, sx, sy float32, ok bool) {
	cols, rows = v.screen.Size()
	if v.stats {
		rows--
	}
	vp := v.doc.Viewport()
	if cols <= 0 || rows <= 0 || vp.Max.X <= 0 || vp.Max.Y <= 0 {
		return 0, 0, 0, 0, false
	}
	return cols, rows, float32(cols) / vp.Max.X, float32(rows) / vp.Max.Y, true
}

// cursorPoint converts the last mouse cell to a logical point at the
// cell's center.
func (v *Viewer) cursorPoint() (scene.Vec2, bool) {
	if !v.haveCursor {
		return scene.Vec2{}, false
	}
	_, _, sx, sy, ok := v.grid()
	if !ok {
		return scene.Vec2{}, false
	}
	return scene.Vec2{
		X: (float32(v.cursorX) + 0.5) / sx,
		Y: (float32(v.cursorY) + 0.5) / sy,
	}, true
}

// fillCells paints the scaled rect as background-colored cells. Cells
// cannot blend, so any fill that reaches here paints opaque.
func (v *Viewer) fillCells(r scene.Rect, fill lamina.Color, sx, sy float32, cols, rows int) {
	cr, cg, cb, _ := fill.Bytes()
	style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb)))
	x0 := max(int(r.Min.X*sx), 0)
	y0 := max(int(r.Min.Y*sy), 0)
	x1 := min(int(r.Max.X*sx), cols)
	y1 := min(int(r.Max.Y*sy), rows)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			v.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (v *Viewer) drawStats(row, cols int) {
	s := v.pass.Stats()
	text := fmt.Sprintf("visible %d/%d  updates %d  draws %d  events %d  |  q quit  space raise  h hide",
		s.Visible, s.NodeSlots, s.Updates, s.DrawRanges, s.EventRefs)
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(text) {
			r = rune(text[x])
		}
		v.screen.SetContent(x, row, r, nil, style)
	}
}
