package commands

import (
	"flag"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/laminaui/lamina"
	"github.com/laminaui/lamina/backend/terminal"
)

// Preview implements the 'lamina preview' command
func Preview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	configPath := fs.String("config", "lamina.toml", "Path to lamina.toml")
	fps := fs.Int("fps", 0, "Repaint rate (default: from lamina.toml)")
	noStats := fs.Bool("no-stats", false, "Hide the stats line")
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
	if *fps > 0 {
		config.Preview.TargetFPS = *fps
	}
	if *noStats {
		config.Preview.ShowStats = false
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init terminal: %w", err)
	}
	defer screen.Fini()

	return terminal.NewViewer(screen, doc, config.Preview).Run()
}
