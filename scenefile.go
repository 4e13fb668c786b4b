package lamina

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/laminaui/lamina/scene"
)

// Document is a named scene, built from a TOML description or in code:
// the graph itself, name lookups for nodes and layers, per-data fill
// colors for renderers, and the relative offsets the naive block layout
// was computed from.
type Document struct {
	Graph    *scene.Graph
	Title    string
	viewport scene.Vec2

	layers     map[string]scene.LayerHandle
	layerOrder []scene.LayerHandle
	nodes      map[string]scene.Handle
	names      []string     // node slot → document name
	rel        []scene.Vec2 // node slot → offset relative to parent
	fills      [][]Color    // layer slot → data slot → fill
}

// sceneFile mirrors the TOML document shape.
type sceneFile struct {
	Title    string      `toml:"title"`
	Viewport viewportDef `toml:"viewport"`
	Layers   []layerDef  `toml:"layer"`
	Nodes    []NodeSpec  `toml:"node"`
}

type viewportDef struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type layerDef struct {
	Name  string `toml:"name"`
	Draw  bool   `toml:"draw"`
	Event bool   `toml:"event"`
}

// NodeSpec describes one node: the TOML shape of a scene-file entry and
// the argument to AddNode when building scenes in code. W and H of zero
// defer to the class sizing.
type NodeSpec struct {
	Name   string  `toml:"name"`
	Parent string  `toml:"parent,omitempty"`
	Layer  string  `toml:"layer,omitempty"`
	Class  string  `toml:"class,omitempty"`
	X      float32 `toml:"x"`
	Y      float32 `toml:"y"`
	W      float32 `toml:"w"`
	H      float32 `toml:"h"`
}

// LoadDocument reads and parses a scene document.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// NewDocument returns an empty document for building scenes in code.
// Layers and nodes added through AddLayer and AddNode behave exactly as
// if they had been declared in a scene file. A non-positive viewport
// falls back to 800x600.
func NewDocument(title string, viewport scene.Vec2) *Document {
	if viewport.X <= 0 || viewport.Y <= 0 {
		viewport = scene.Vec2{X: 800, Y: 600}
	}
	return &Document{
		Graph:    scene.NewGraph(),
		Title:    title,
		viewport: viewport,
		layers:   make(map[string]scene.LayerHandle),
		nodes:    make(map[string]scene.Handle),
	}
}

// ParseDocument builds a scene graph from TOML. Layers are chained in
// file order (first paints first); top-level nodes stack in file order
// (first is bottommost). Parents must be declared before their children,
// which also lets absolute offsets be computed in a single pass.
func ParseDocument(data []byte) (*Document, error) {
	var sf sceneFile
	if err := toml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse scene document: %w", err)
	}

	d := NewDocument(sf.Title, scene.Vec2{X: sf.Viewport.Width, Y: sf.Viewport.Height})
	d.Graph.Reserve(len(sf.Nodes), len(sf.Layers))

	for _, ld := range sf.Layers {
		var caps scene.LayerCaps
		if ld.Draw {
			caps |= scene.LayerDraw
		}
		if ld.Event {
			caps |= scene.LayerEvent
		}
		if _, err := d.AddLayer(ld.Name, caps); err != nil {
			return nil, err
		}
	}
	for _, ns := range sf.Nodes {
		if _, err := d.AddNode(ns); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// AddLayer appends a named layer to the end of the active chain.
func (d *Document) AddLayer(name string, caps scene.LayerCaps) (scene.LayerHandle, error) {
	if name == "" {
		return scene.LayerHandle{}, fmt.Errorf("layer without a name")
	}
	if _, dup := d.layers[name]; dup {
		return scene.LayerHandle{}, fmt.Errorf("duplicate layer %q", name)
	}
	l := d.Graph.CreateLayer(caps)
	d.layers[name] = l
	d.layerOrder = append(d.layerOrder, l)
	for int(l.ID) >= len(d.fills) {
		d.fills = append(d.fills, nil)
	}
	return l, nil
}

// AddNode creates a named node. Parents must already exist; an empty
// Parent makes the node top-level, stacked above the nodes added before
// it. Explicit W/H override the class sizing. A failed add leaves the
// document untouched.
func (d *Document) AddNode(ns NodeSpec) (scene.Handle, error) {
	if ns.Name == "" {
		return scene.Handle{}, fmt.Errorf("node without a name")
	}
	if _, dup := d.nodes[ns.Name]; dup {
		return scene.Handle{}, fmt.Errorf("duplicate node %q", ns.Name)
	}

	style, err := ParseStyle(ns.Class)
	if err != nil {
		return scene.Handle{}, fmt.Errorf("node %q: %w", ns.Name, err)
	}

	var parent scene.Handle
	if ns.Parent != "" {
		p, ok := d.nodes[ns.Parent]
		if !ok {
			return scene.Handle{}, fmt.Errorf("node %q: unknown parent %q (parents are declared before children)", ns.Name, ns.Parent)
		}
		parent = p
	}

	// A datum is attached when the node paints or names a layer
	// explicitly (the latter covers event-only hit areas).
	var layer scene.LayerHandle
	attach := style.HasFill || ns.Layer != ""
	if attach {
		layer, err = d.layerFor(ns)
		if err != nil {
			return scene.Handle{}, err
		}
	}

	h := d.Graph.CreateNode()
	d.nodes[ns.Name] = h
	d.setName(h.ID, ns.Name)
	d.SetRel(h, scene.Vec2{X: ns.X, Y: ns.Y})

	abs := d.Rel(h)
	if ns.Parent != "" {
		d.Graph.SetParent(h, parent)
		abs = abs.Add(d.Graph.Offset(parent))
	} else {
		d.Graph.Raise(h)
	}
	d.Graph.SetOffset(h, abs)

	size := style.Size
	if ns.W > 0 {
		size.X = ns.W
	}
	if ns.H > 0 {
		size.Y = ns.H
	}
	d.Graph.SetSize(h, size)
	d.Graph.SetHidden(h, style.Hidden)
	d.Graph.SetClip(h, style.Clip)

	if attach {
		data := d.Graph.CreateData(layer, h)
		for int(data.ID) >= len(d.fills[layer.ID]) {
			d.fills[layer.ID] = append(d.fills[layer.ID], 0)
		}
		d.fills[layer.ID][data.ID] = style.Fill
	}

	return h, nil
}

func (d *Document) layerFor(ns NodeSpec) (scene.LayerHandle, error) {
	if ns.Layer != "" {
		l, ok := d.layers[ns.Layer]
		if !ok {
			return scene.LayerHandle{}, fmt.Errorf("node %q: unknown layer %q", ns.Name, ns.Layer)
		}
		return l, nil
	}
	if len(d.layerOrder) == 0 {
		return scene.LayerHandle{}, fmt.Errorf("node %q: fill requires a layer", ns.Name)
	}
	return d.layerOrder[0], nil
}

func (d *Document) setName(id uint32, name string) {
	for int(id) >= len(d.names) {
		d.names = append(d.names, "")
	}
	d.names[id] = name
}

// Viewport returns the document's logical viewport rect.
func (d *Document) Viewport() scene.Rect {
	return scene.Rect{Max: d.viewport}
}

// Node resolves a document node name.
func (d *Document) Node(name string) (scene.Handle, bool) {
	h, ok := d.nodes[name]
	return h, ok
}

// Layer resolves a document layer name.
func (d *Document) Layer(name string) (scene.LayerHandle, bool) {
	l, ok := d.layers[name]
	return l, ok
}

// Layers returns the document's layers in chain order.
func (d *Document) Layers() []scene.LayerHandle { return d.layerOrder }

// Name returns the document name of a node, or "" for nodes the
// document does not know about.
func (d *Document) Name(h scene.Handle) string {
	if int(h.ID) < len(d.names) {
		return d.names[h.ID]
	}
	return ""
}

// Fill returns the fill color for a (layer slot, data slot) pair as they
// appear in draw ranges and updates. Unknown pairs are transparent.
func (d *Document) Fill(layer, data uint32) Color {
	if int(layer) < len(d.fills) && int(data) < len(d.fills[layer]) {
		return d.fills[layer][data]
	}
	return 0
}

// Rel returns a node's offset relative to its parent.
func (d *Document) Rel(h scene.Handle) scene.Vec2 {
	if int(h.ID) < len(d.rel) {
		return d.rel[h.ID]
	}
	return scene.Vec2{}
}

// SetRel changes a node's relative offset; the next Relayout moves the
// node and its subtree. Animation hooks drive this.
func (d *Document) SetRel(h scene.Handle, v scene.Vec2) {
	for int(h.ID) >= len(d.rel) {
		d.rel = append(d.rel, scene.Vec2{})
	}
	d.rel[h.ID] = v
}

// Relayout recomputes absolute offsets from the relative ones. The order
// argument is the propagation order, which visits parents before
// children, so one forward walk settles every absolute position. Pass it
// to Pass.Run as the layout hook:
//
//	pass.Run(doc.Graph, doc.Viewport(), doc.Relayout)
func (d *Document) Relayout(g *scene.Graph, order []int32) {
	for _, slot := range order[1:] {
		id := uint32(slot)
		if int(id) >= len(d.rel) {
			continue
		}
		h, ok := g.NodeByID(id)
		if !ok {
			continue
		}
		abs := d.rel[id]
		if parent, ok := g.Parent(h); ok {
			abs = abs.Add(g.Offset(parent))
		}
		g.SetOffset(h, abs)
	}
}
