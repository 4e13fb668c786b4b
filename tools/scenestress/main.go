// scenestress emits a randomized scene document for stress-testing the
// frame passes. The output loads with lamina validate, lamina preview,
// and LoadDocument; the generator parses its own output before writing
// so a bad document never reaches disk.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/laminaui/lamina"
)

type sceneDoc struct {
	Title    string            `toml:"title"`
	Viewport viewport          `toml:"viewport"`
	Layers   []layer           `toml:"layer"`
	Nodes    []lamina.NodeSpec `toml:"node"`
}

type viewport struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type layer struct {
	Name  string `toml:"name"`
	Draw  bool   `toml:"draw"`
	Event bool   `toml:"event"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	nodes := flag.Int("nodes", 1000, "Number of nodes")
	depth := flag.Int("depth", 6, "Maximum tree depth")
	layers := flag.Int("layers", 4, "Number of layers")
	hidden := flag.Float64("hidden", 0.05, "Probability a node is hidden")
	clip := flag.Float64("clip", 0.10, "Probability a node clips its subtree")
	seed := flag.Int64("seed", 1, "Random seed")
	width := flag.Float64("width", 1920, "Viewport width")
	height := flag.Float64("height", 1080, "Viewport height")
	out := flag.String("out", "", "Output path (default: stdout)")
	flag.Parse()

	if *nodes < 1 || *layers < 1 || *depth < 1 {
		return fmt.Errorf("nodes, layers, and depth must be positive")
	}

	r := rand.New(rand.NewSource(*seed))
	doc := generate(r, *nodes, *depth, *layers, *hidden, *clip,
		float32(*width), float32(*height))

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal scene: %w", err)
	}
	if _, err := lamina.ParseDocument(data); err != nil {
		return fmt.Errorf("generated scene does not load: %w", err)
	}

	if *out == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *out, err)
	}
	fmt.Printf("✓ Generated %s: %d nodes, %d layers, seed %d\n", *out, *nodes, *layers, *seed)
	return nil
}

// placed tracks a generated node's absolute rect and depth so children
// can be sized and positioned within (and occasionally outside) it.
type placed struct {
	x, y, w, h float32
	depth      int
}

func generate(r *rand.Rand, nodes, depth, layers int, hidden, clip float64, vw, vh float32) sceneDoc {
	doc := sceneDoc{
		Title:    fmt.Sprintf("stress %d", nodes),
		Viewport: viewport{Width: vw, Height: vh},
	}

	layerNames := make([]string, layers)
	for i := range layerNames {
		layerNames[i] = fmt.Sprintf("layer%d", i)
		l := layer{Name: layerNames[i], Draw: true, Event: i%2 == 0}
		if i > 0 {
			l.Draw = r.Float64() < 0.9
		}
		doc.Layers = append(doc.Layers, l)
	}

	all := make([]placed, 0, nodes)
	for i := 0; i < nodes; i++ {
		n := lamina.NodeSpec{Name: fmt.Sprintf("n%04d", i)}
		var p placed

		// Pick a parent among shallower nodes; roughly a fifth of the
		// nodes stay top-level so restacking has material to work with.
		parent := -1
		if len(all) > 0 && r.Float64() < 0.8 {
			for try := 0; try < 4; try++ {
				c := r.Intn(len(all))
				if all[c].depth < depth {
					parent = c
					break
				}
			}
		}

		if parent >= 0 {
			pp := all[parent]
			n.Parent = doc.Nodes[parent].Name
			p.depth = pp.depth + 1
			p.w = snap(pp.w * (0.2 + 0.6*r.Float32()))
			p.h = snap(pp.h * (0.2 + 0.6*r.Float32()))
			// Children land mostly inside the parent; the overshoot is
			// what exercises clip culling.
			n.X = snap(pp.w * 1.1 * r.Float32())
			n.Y = snap(pp.h * 1.1 * r.Float32())
			p.x, p.y = pp.x+n.X, pp.y+n.Y
		} else {
			p.w = snap(vw * (0.1 + 0.4*r.Float32()))
			p.h = snap(vh * (0.1 + 0.4*r.Float32()))
			n.X = snap(vw * 0.9 * r.Float32())
			n.Y = snap(vh * 0.9 * r.Float32())
			p.x, p.y = n.X, n.Y
		}
		n.W, n.H = p.w, p.h

		var classes []string
		if r.Float64() < 0.85 {
			classes = append(classes, fmt.Sprintf("bg-[#%06x]", r.Intn(1<<24)))
		} else {
			// Fill-less hit area; naming a layer is what attaches it.
			n.Layer = layerNames[r.Intn(layers)]
		}
		if n.Layer == "" && r.Float64() < 0.5 {
			n.Layer = layerNames[r.Intn(layers)]
		}
		if r.Float64() < hidden {
			classes = append(classes, "hidden")
		}
		if r.Float64() < clip {
			classes = append(classes, "clip")
		}
		n.Class = strings.Join(classes, " ")

		doc.Nodes = append(doc.Nodes, n)
		all = append(all, p)
	}

	return doc
}

// snap keeps generated geometry on whole pixels so the TOML stays
// readable.
func snap(v float32) float32 {
	return float32(int(v))
}
