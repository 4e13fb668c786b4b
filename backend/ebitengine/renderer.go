// Package ebitengine renders lamina scenes on the GPU through the
// ebiten game library. Quad assembly is separated from submission so
// the paint-order logic stays testable without a display.
package ebitengine

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/laminaui/lamina"
	"github.com/laminaui/lamina/scene"
)

// Quad is one solid rectangle, already in paint order.
type Quad struct {
	Pos  scene.Vec2
	Size scene.Vec2
	Fill lamina.Color
}

// AppendQuads appends one quad per scheduled draw update: draw ranges
// bottom-to-top by top-level node, layers in chain order within each,
// updates in visible node order within each range. Fully transparent
// fills are dropped, which keeps event-only data on mixed layers off
// the screen. Nodes freed since the pass ran are skipped.
func AppendQuads(dst []Quad, g *scene.Graph, p *scene.Pass, doc *lamina.Document) []Quad {
	updates := p.Updates()
	for _, r := range p.DrawRanges() {
		for _, u := range updates[r.Offset : r.Offset+r.Size] {
			fill := doc.Fill(r.Layer, u.Data)
			if fill&0xff == 0 {
				continue
			}
			h, ok := g.NodeByID(u.Node)
			if !ok {
				continue
			}
			dst = append(dst, Quad{Pos: g.Offset(h), Size: g.Size(h), Fill: fill})
		}
	}
	return dst
}

// Renderer batches a frame's quads and submits them with a cached 1x1
// white image, stretched per quad by the geometry matrix. Fill colors
// are premultiplied at submission.
type Renderer struct {
	quads []Quad
	white *ebiten.Image
}

// QuadCount reports how many quads the last Draw submitted.
func (r *Renderer) QuadCount() int { return len(r.quads) }

func (r *Renderer) whitePixel() *ebiten.Image {
	if r.white == nil {
		r.white = ebiten.NewImage(1, 1)
		r.white.Fill(color.White)
	}
	return r.white
}

// Draw assembles the frame's quads and draws them onto target. The quad
// buffer is retained across frames.
func (r *Renderer) Draw(target *ebiten.Image, g *scene.Graph, p *scene.Pass, doc *lamina.Document) {
	r.quads = AppendQuads(r.quads[:0], g, p, doc)
	if len(r.quads) == 0 {
		return
	}
	white := r.whitePixel()
	var op ebiten.DrawImageOptions
	for i := range r.quads {
		q := &r.quads[i]
		op.GeoM.Reset()
		op.GeoM.Scale(float64(q.Size.X), float64(q.Size.Y))
		op.GeoM.Translate(float64(q.Pos.X), float64(q.Pos.Y))
		op.ColorScale.Reset()
		cr, cg, cb, ca := q.Fill.RGBA()
		op.ColorScale.Scale(cr*ca, cg*ca, cb*ca, ca)
		target.DrawImage(white, &op)
	}
}
