// Package lamina is a retained-mode scene toolkit built around a flat,
// allocation-free frame pipeline. The scene package holds the registry
// and the per-frame passes; this package adds the pieces an application
// touches directly: configuration, TOML scene documents, utility-class
// styling, and hit testing over pass output. Rendering lives in the
// backend packages.
package lamina

import "github.com/laminaui/lamina/scene"

// Convenience aliases so applications can stay on this package for the
// common surface.
type (
	Vec2   = scene.Vec2
	Rect   = scene.Rect
	Handle = scene.Handle
)

// Hit is one resolved hit-test result: the topmost node under the point
// and its event candidates, topmost first.
type Hit struct {
	Node       scene.Handle
	Candidates []scene.EventRef
}

// Pick hit-tests a point against the most recent frame. It walks the
// visible order backwards, so of the nodes under the point it finds the
// one that paints last; nodes without event candidates are transparent
// to picking. The returned candidate slice is valid until the next
// OrderEvents.
func Pick(g *scene.Graph, p *scene.Pass, pt Vec2) (Hit, bool) {
	nodes := p.VisibleNodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		h, ok := g.NodeByID(nodes[i])
		if !ok || !p.Visible(h) {
			continue
		}
		if !g.NodeRect(h).Contains(pt) {
			continue
		}
		if refs := p.EventRefs(h); len(refs) > 0 {
			return Hit{Node: h, Candidates: refs}, true
		}
	}
	return Hit{}, false
}
