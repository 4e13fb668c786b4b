package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/laminaui/lamina"
)

// Init implements the 'lamina init' command
func Init(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	title := fs.String("title", "", "Window title (default: directory name)")
	force := fs.Bool("force", false, "Overwrite existing files")
	fs.Parse(args)

	name := *title
	if name == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		name = filepath.Base(cwd)
	}

	if _, err := os.Stat("lamina.toml"); err == nil && !*force {
		return fmt.Errorf("lamina.toml already exists (use --force to overwrite)")
	}

	config := lamina.DefaultAppConfig()
	config.Window.Title = name
	if err := lamina.SaveAppConfig("lamina.toml", config); err != nil {
		return err
	}
	fmt.Println("  ✓ Created lamina.toml")

	if _, err := os.Stat(config.Scene.Path); os.IsNotExist(err) || *force {
		starter := fmt.Sprintf(starterScene, name)
		if err := os.WriteFile(config.Scene.Path, []byte(starter), 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", config.Scene.Path, err)
		}
		fmt.Printf("  ✓ Created %s\n", config.Scene.Path)
	}

	fmt.Println("")
	fmt.Println("Next steps:")
	fmt.Println("  lamina validate     Check the scene and print frame stats")
	fmt.Println("  lamina preview      View the scene in the terminal")

	return nil
}

const starterScene = `title = "%s"

[viewport]
width = 800
height = 600

[[layer]]
name = "panels"
draw = true
event = true

[[layer]]
name = "overlay"
draw = true

[[node]]
name = "background"
class = "bg-slate-900 w-[800] h-[600]"

[[node]]
name = "card"
parent = "background"
class = "bg-slate-800 clip w-64 h-48"
x = 272
y = 204

[[node]]
name = "accent"
parent = "card"
layer = "overlay"
class = "bg-sky-500 w-64 h-2"
`
