package tui

import (
	"log"

	"github.com/akasprzok/tandem/internal/charts"
	"github.com/akasprzok/tandem/internal/legend"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Init() tea.Cmd {
	if m.state != StateLoading {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m, cmd = m.handleKeyMsg(msg)

	case tea.MouseMsg:
		m = m.handleMouseMsg(msg)

	case fetchedMsg:
		m = m.handleFetched(msg)
		cmd = m.scheduleRefresh()

	case refreshMsg:
		if !m.fetching {
			m.fetching = true
			cmd = m.fetch()
		}

	case spinner.TickMsg:
		if m.state == StateLoading {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}

	m.board.refreshLegend()
	return m, cmd
}

func (m Model) handleFetched(msg fetchedMsg) Model {
	m.fetching = false
	m.state = StateReady
	m.updated = msg.at
	for i, p := range m.board.panels {
		if p.cfg.Query == "" {
			continue
		}
		r := msg.results[i]
		p.warnings = r.warnings
		p.err = r.err
		if r.err != nil {
			log.Printf("chart %s: %v", p.cfg.ID, r.err)
			continue
		}
		hovering := p.hovering
		p.leave()
		p.view.SetOptions(p.cfg.Options(r.series))
		p.clampCursor()
		if hovering {
			p.moveCursor(0, 0)
		}
	}
	return m
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	t := m.focused()
	if t.legend != nil {
		switch {
		case t.legend.Filtering():
			return m, t.legend.Update(msg)
		case msg.String() == "tab", msg.String() == "shift+tab", msg.String() == "q", msg.String() == "r":
		default:
			return m, t.legend.Update(msg)
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		return m.moveFocus(1), nil
	case "shift+tab":
		return m.moveFocus(-1), nil
	case "r":
		if m.fetching {
			return m, nil
		}
		m.fetching = true
		return m, m.fetch()
	}

	if t.panel < 0 {
		return m, nil
	}
	p := m.board.panels[t.panel]
	switch msg.String() {
	case "left", "h":
		p.moveCursor(0, -1)
	case "right", "l":
		p.moveCursor(0, 1)
	case "up", "k":
		p.moveCursor(-1, 0)
	case "down", "j":
		p.moveCursor(1, 0)
	case "enter", " ":
		p.view.Engine().Click(p.cursorSeries, p.cursorPoint)
	case "esc":
		p.leave()
	}
	return m, nil
}

func (m Model) moveFocus(delta int) Model {
	if len(m.targets) == 0 {
		return m
	}
	if t := m.focused(); t.legend != nil {
		t.legend.Leave()
		t.legend.Focus(false)
	} else if t.panel >= 0 {
		m.board.panels[t.panel].leave()
	}
	m.focus = (m.focus + delta + len(m.targets)) % len(m.targets)
	if t := m.focused(); t.legend != nil {
		t.legend.Focus(true)
	}
	return m
}

// handleMouseMsg hovers and toggles legend rows under the pointer.
func (m Model) handleMouseMsg(msg tea.MouseMsg) Model {
	l, row, ok := m.legendRowAt(msg.Y)
	if m.hovered != nil && (!ok || l != m.hovered) {
		m.hovered.Leave()
		m.hovered = nil
	}
	if !ok {
		return m
	}
	switch {
	case msg.Action == tea.MouseActionMotion:
		l.Hover(row)
		m.hovered = l
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		l.Click(row)
	}
	return m
}

// legendRowAt finds the legend row drawn on screen line y.
func (m Model) legendRowAt(y int) (*legend.Legend, int, bool) {
	top := 0
	for _, b := range m.blocks() {
		if b.legend != nil && y >= top+b.legendOffset {
			if row, ok := b.legend.RowAt(y - top - b.legendOffset); ok {
				return b.legend, row, true
			}
		}
		top += b.height
	}
	return nil, 0, false
}

// moveCursor moves the keyboard cursor and hovers the point under it.
func (p *panel) moveCursor(dSeries, dPoint int) {
	series := p.view.Engine().Series()
	if len(series) == 0 {
		return
	}
	p.cursorSeries = (p.cursorSeries + dSeries + len(series)) % len(series)
	p.cursorPoint += dPoint
	p.clampCursor()
	chart := p.view.Engine()
	if chart.Hovered() != nil {
		chart.Leave()
	}
	chart.Hover(p.cursorSeries, p.cursorPoint)
	p.hovering = chart.Hovered() != nil
}

func (p *panel) clampCursor() {
	series := p.view.Engine().Series()
	if len(series) == 0 {
		p.cursorSeries, p.cursorPoint = 0, 0
		return
	}
	p.cursorSeries = min(p.cursorSeries, len(series)-1)
	n := len(series[p.cursorSeries].Points())
	p.cursorPoint = max(min(p.cursorPoint, n-1), 0)
}

func (p *panel) leave() {
	if p.hovering {
		p.view.Engine().Leave()
		p.hovering = false
	}
}

// hoveredPoint returns the point under the keyboard cursor.
func (p *panel) hoveredPoint() (*charts.Point, bool) {
	pt := p.view.Engine().Point(p.cursorSeries, p.cursorPoint)
	return pt, pt != nil && p.hovering
}
