// Command edcore is a modal terminal text editor.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyxed/edcore/internal/app"
	"github.com/nyxed/edcore/internal/session"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "version", "--version":
			fmt.Println("edcore", version)
			return
		}
	}

	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	content := ""
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			content = string(data)
		case os.IsNotExist(err):
			// editing a file that doesn't exist yet, same as vim
		default:
			fmt.Fprintf(os.Stderr, "edcore: %v\n", err)
			os.Exit(1)
		}
	}

	m := app.NewModel(path, content)
	defer m.Close()

	if cwd, err := os.Getwd(); err == nil {
		if err := session.Load(cwd, m); err != nil {
			fmt.Fprintf(os.Stderr, "edcore: init script: %v\n", err)
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "edcore: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Printf(`edcore — modal text editor (%s)

Usage:
  edcore [file]         Open file (or an empty buffer) for editing

Options:
  help, --help, -h      Show this help
  version, --version    Show version

On startup, edcore sources a %q found by walking up from the
current directory, if one exists — a plain list of ex-command lines,
one per line, with %q-prefixed comments.
`, version, session.InitFilename, `"`)
}
