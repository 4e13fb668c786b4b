package main

import (
	"fmt"
	"os"

	"github.com/laminaui/lamina/cmd/lamina/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "init":
		err = commands.Init(args)
	case "validate":
		err = commands.Validate(args)
	case "preview":
		err = commands.Preview(args)
	case "version", "-v", "--version":
		fmt.Printf("lamina version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`lamina - scene toolkit CLI

Usage: lamina <command> [options]

Commands:
  init       Create lamina.toml and a starter scene document
  validate   Load a scene document and print per-stage frame statistics
  preview    View a scene document in the terminal
  version    Print version information
  help       Show this help message

Examples:
  lamina init --title MyApp       Start a project in the current directory
  lamina validate scene.toml      Check a scene and print frame stats
  lamina preview scene.toml       Preview interactively (q quit, space raise, h hide)

Configuration:
  Projects are configured via lamina.toml in the project root.
  Run 'lamina init' to create one with defaults.`)
}
