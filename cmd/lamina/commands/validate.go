package commands

import (
	"flag"
	"fmt"

	"github.com/laminaui/lamina"
	"github.com/laminaui/lamina/scene"
)

// Validate implements the 'lamina validate' command
func Validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", "lamina.toml", "Path to lamina.toml")
	fs.Parse(args)

	config, err := lamina.LoadAppConfig(*configPath)
	if err != nil {
		return err
	}
	path := fs.Arg(0)
	if path == "" {
		path = config.Scene.Path
	}

	doc, err := lamina.LoadDocument(path)
	if err != nil {
		return err
	}

	g := doc.Graph
	fmt.Printf("Validating %s\n", path)
	if doc.Title != "" {
		fmt.Printf("  title     %q\n", doc.Title)
	}
	vp := doc.Viewport()
	fmt.Printf("  viewport  %gx%g\n", vp.Max.X, vp.Max.Y)
	fmt.Printf("  nodes     %d live in %d slots\n", g.LiveNodes(), g.NodeSlots())
	fmt.Printf("  layers    %d active\n", g.LayerCount())

	pass := scene.NewPass(g)
	pass.BuildOrder(g)
	doc.Relayout(g, pass.Order())
	pass.BuildVisible(g)
	fmt.Printf("  visible   %d nodes, %d top-level\n", pass.VisibleLen(), pass.TopLevelCount())

	pass.CullClips(g, vp)
	culled := 0
	for _, id := range pass.VisibleNodes() {
		if !pass.VisibleSet().Get(id) {
			culled++
		}
	}
	fmt.Printf("  culled    %d\n", culled)

	pass.OrderData(g)
	dense := pass.Stats().DrawRanges
	pass.CompactDraws()
	pass.OrderEvents(g)
	s := pass.Stats()
	fmt.Printf("  updates   %d scheduled\n", s.Updates)
	fmt.Printf("  draws     %d ranges (%d dense)\n", s.DrawRanges, dense)
	fmt.Printf("  events    %d candidates\n", s.EventRefs)

	fmt.Println("OK")
	return nil
}
