package main

import (
	"io"
	"log"

	"github.com/akasprzok/tandem/internal/commands"
	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	ctx := kong.Parse(&commands.Cli,
		kong.Name("tandem"),
		kong.Description("Terminal dashboards of linked Prometheus charts with shared legends and highlights."),
	)

	if commands.Cli.DebugLog != "" {
		f, err := tea.LogToFile(commands.Cli.DebugLog, "tandem")
		ctx.FatalIfErrorf(err)
		defer f.Close()
	} else {
		// The TUI owns the terminal.
		log.SetOutput(io.Discard)
	}

	err := ctx.Run(&commands.Context{Timeout: commands.Cli.Timeout})
	ctx.FatalIfErrorf(err)
}
