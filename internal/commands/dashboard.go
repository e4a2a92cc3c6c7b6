package commands

import (
	"github.com/akasprzok/tandem/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

// DashboardCmd is the Kong command for the interactive dashboard.
type DashboardCmd struct {
	Source
}

// Run starts the interactive TUI.
func (c *DashboardCmd) Run(ctx *Context) error {
	d, client, err := c.Load(ctx.Timeout)
	if err != nil {
		return err
	}
	model, err := tui.New(d, client)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, err = p.Run()
	return err
}
