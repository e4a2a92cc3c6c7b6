package tui

import (
	"fmt"
	"strings"

	"github.com/akasprzok/tandem/internal/legend"
	"github.com/akasprzok/tandem/internal/tables"
	"github.com/charmbracelet/lipgloss"
)

// block is one vertically stacked piece of the screen. legendOffset is the
// line of block at which legend's view starts.
type block struct {
	content      string
	height       int
	legend       *legend.Legend
	legendOffset int
}

func newBlock(content string) block {
	return block{content: content, height: lipgloss.Height(content)}
}

func (m Model) View() string {
	blocks := m.blocks()
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.content)
	}
	return strings.Join(parts, "\n")
}

func (m Model) blocks() []block {
	width := m.chartWidth()
	blocks := []block{newBlock(m.renderStatusBar())}

	if m.state == StateLoading {
		loadingStyle := lipgloss.NewStyle().Padding(1, 2)
		blocks = append(blocks, newBlock(loadingStyle.Render(m.spinner.View()+" Loading "+m.dashboard.Title)))
	}

	focused := m.focused()
	for i, p := range m.board.panels {
		blocks = append(blocks, m.renderPanel(i, p, width, focused))
	}

	if l := m.board.legend; l != nil && len(l.Items()) > 0 {
		style := PanelStyle
		if focused.legend == l {
			style = style.BorderForeground(FocusedColor)
		}
		title := TitleStyle.Render("Legend")
		b := newBlock(style.Render(lipgloss.JoinVertical(lipgloss.Left, title, l.View())))
		b.legend = l
		b.legendOffset = 1 + lipgloss.Height(title)
		blocks = append(blocks, b)
	}

	blocks = append(blocks, newBlock(m.renderHelpBar()))
	return blocks
}

func (m Model) renderPanel(i int, p *panel, width int, focused target) block {
	style := PanelStyle
	if focused.panel == i && focused.legend == nil {
		style = style.BorderForeground(FocusedColor)
	}

	title := p.cfg.Title
	if title == "" {
		title = p.cfg.ID
	}
	parts := []string{TitleStyle.Render(title)}

	switch {
	case p.err != nil:
		parts = append(parts, ErrorStyle.Render("Error: ")+p.err.Error())
	case !p.view.Rendered():
		parts = append(parts, m.spinner.View()+" Executing query")
	default:
		chart := p.view.Engine().View(width, 0)
		if chart == "" {
			chart = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("No visible series")
		}
		parts = append(parts, chart)
	}

	for _, w := range p.warnings {
		parts = append(parts, WarningStyle.Render("Warning: "+w))
	}

	legendOffset := 1 + lipgloss.Height(lipgloss.JoinVertical(lipgloss.Left, parts...))
	l := p.view.Legend()
	if l != nil && len(l.Items()) > 0 {
		lv := l.View()
		if focused.legend == l {
			lv = lipgloss.NewStyle().Foreground(FocusedColor).Render("▸ ") + "\n" + lv
			legendOffset++
		}
		parts = append(parts, lv)
	} else {
		l = nil
	}

	if focused.panel == i {
		if pt, ok := p.hoveredPoint(); ok {
			parts = append(parts, tables.Readout(p.view.Engine(), pt.X(), ReadoutRows).View())
		}
	}

	b := newBlock(style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
	b.legend = l
	b.legendOffset = legendOffset
	return b
}

func (m Model) renderStatusBar() string {
	status := "ready"
	if m.fetching {
		status = "refreshing"
	}
	title := m.dashboard.Title
	if title == "" {
		title = "tandem"
	}
	text := fmt.Sprintf("  %s   Charts: %d   Range: %s   Step: %s   Refresh: %s   [%s]",
		TitleStyle.Render(title), len(m.board.panels), m.dashboard.Range, m.dashboard.Step, m.dashboard.Refresh, status)
	if !m.updated.IsZero() {
		text += "   Updated: " + m.updated.Format("15:04:05")
	}
	if id, ok := m.board.group.Active(); ok {
		text += "   Highlight: " + id
	}
	return BarStyle.Width(m.width).Render(text)
}

func (m Model) renderHelpBar() string {
	var helpText string
	if m.focused().legend != nil {
		helpText = "  j/k: hover | enter/space: toggle | /: filter | esc: clear | tab: next | q: quit"
	} else {
		helpText = "  h/l: move x | j/k: series | enter/space: toggle | esc: clear | tab: next | r: refresh | q: quit"
	}
	return BarStyle.Width(m.width).Render(helpText)
}
