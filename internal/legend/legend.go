package legend

import (
	"strings"

	"github.com/akasprzok/tandem/internal/highlight"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	teatable "github.com/evertras/bubble-table/table"
)

const (
	// DefaultPageSize is the number of rows per legend page.
	DefaultPageSize = 5

	// headerLines is the table chrome above the first row: the top border,
	// the header and the header separator.
	headerLines = 3

	columnMarker = "marker"
	columnFocus  = "focus"
	columnLabel  = "label"
	columnID     = "id"
)

var (
	hiddenStyle      = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	highlightedStyle = lipgloss.NewStyle().Bold(true)
	mutedMarker      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Props are the legend's callbacks. OnItemHighlight requires
// OnClearHighlight.
type Props struct {
	OnItemHighlight      func(Item)
	OnClearHighlight     func()
	OnVisibleItemsChange func(ids []string)
	PageSize             int
}

// Legend is an interactive legend. It can be embedded in a chart or stand
// alone in a highlight group; in both cases it is a highlight.Participant.
type Legend struct {
	props    Props
	items    []Item
	rows     []int // indices into items that pass the filter
	cursor   int
	active   string
	hovered  string
	focused  bool
	filter   textinput.Model
	table    teatable.Model
	member   *highlight.Member
	pageSize int
}

// New returns an empty legend.
func New(props Props) (*Legend, error) {
	if props.OnItemHighlight != nil && props.OnClearHighlight == nil {
		return nil, highlight.ErrMissingClear
	}
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/"
	l := &Legend{
		props:    props,
		filter:   ti,
		pageSize: props.PageSize,
	}
	if l.pageSize <= 0 {
		l.pageSize = DefaultPageSize
	}
	l.rebuild()
	return l, nil
}

// Join registers the legend in g, making it a standalone legend whose
// hovers reach every chart in the group. The returned function leaves.
func (l *Legend) Join(g *highlight.Group) (leave func()) {
	l.member = g.Register(l)
	return func() {
		l.member.Unregister()
		l.member = nil
	}
}

// SetItems replaces the rows. The legend's current highlight, if any,
// overrides the Highlighted flags of items.
func (l *Legend) SetItems(items []Item) {
	l.items = items
	if l.active == "" {
		for _, it := range items {
			if it.Highlighted {
				l.active = it.Identity
				break
			}
		}
	}
	l.mark(l.active)
	l.rebuild()
}

// Items returns the current rows.
func (l *Legend) Items() []Item {
	return l.items
}

// Focus gives or takes keyboard focus.
func (l *Legend) Focus(focused bool) {
	l.focused = focused
	if !focused {
		l.filter.Blur()
	}
	l.rebuild()
}

// Focused reports whether the legend has keyboard focus.
func (l *Legend) Focused() bool {
	return l.focused
}

// Filtering reports whether the filter input has focus.
func (l *Legend) Filtering() bool {
	return l.filter.Focused()
}

// Highlighted returns the highlighted identity, or "".
func (l *Legend) Highlighted() string {
	return l.active
}

// Page returns the zero-based page the cursor is on.
func (l *Legend) Page() int {
	return l.cursor / l.pageSize
}

// Highlight marks ev's identity and scrolls its row into view.
func (l *Legend) Highlight(ev highlight.Event) {
	if ev.Identity != l.hovered {
		l.hovered = ""
	}
	l.mark(ev.Identity)
	for i, idx := range l.rows {
		if l.items[idx].Identity == ev.Identity {
			l.cursor = i
			break
		}
	}
	l.rebuild()
}

// ClearHighlight unmarks every row.
func (l *Legend) ClearHighlight(highlight.Event) {
	l.hovered = ""
	l.mark("")
	l.rebuild()
}

// Hover highlights the row at index as a user action.
func (l *Legend) Hover(row int) {
	if row < 0 || row >= len(l.rows) {
		return
	}
	it := l.items[l.rows[row]]
	l.cursor = row
	if l.hovered == it.Identity {
		l.rebuild()
		return
	}
	l.hovered = it.Identity
	l.mark(it.Identity)
	l.rebuild()
	if l.props.OnItemHighlight != nil {
		l.props.OnItemHighlight(it)
	}
	if l.member != nil {
		l.member.Enter(highlight.Event{Identity: it.Identity, Origin: highlight.User})
	}
}

// Leave ends a user hover.
func (l *Legend) Leave() {
	if l.hovered == "" {
		return
	}
	l.hovered = ""
	l.mark("")
	l.rebuild()
	if l.props.OnClearHighlight != nil {
		l.props.OnClearHighlight()
	}
	if l.member != nil {
		l.member.Exit(highlight.Event{Origin: highlight.User})
	}
}

// Click toggles the row at index and reports the resulting visible set.
// The legend's own rows are updated by the caller through SetItems.
func (l *Legend) Click(row int) {
	if row < 0 || row >= len(l.rows) || l.props.OnVisibleItemsChange == nil {
		return
	}
	target := l.items[l.rows[row]].Identity
	ids := []string{}
	for _, it := range l.items {
		visible := it.Visible
		if it.Identity == target {
			visible = !visible
		}
		if visible {
			ids = append(ids, it.Identity)
		}
	}
	l.props.OnVisibleItemsChange(ids)
}

// RowAt maps a line of the legend's view to a row index on the current
// page.
func (l *Legend) RowAt(y int) (int, bool) {
	if l.filterShown() {
		y--
	}
	y -= headerLines
	if y < 0 || y >= l.pageSize {
		return 0, false
	}
	row := l.Page()*l.pageSize + y
	if row >= len(l.rows) {
		return 0, false
	}
	return row, true
}

// Update handles keys while the legend is focused.
func (l *Legend) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !l.focused {
		return nil
	}

	if l.filter.Focused() {
		switch key.String() {
		case "enter", "esc":
			l.filter.Blur()
			return nil
		}
		var cmd tea.Cmd
		l.filter, cmd = l.filter.Update(msg)
		l.cursor = 0
		l.rebuild()
		return cmd
	}

	switch key.String() {
	case "/":
		l.filter.SetValue("")
		return l.filter.Focus()
	case "up", "k":
		l.Hover(max(l.cursor-1, 0))
	case "down", "j":
		l.Hover(min(l.cursor+1, len(l.rows)-1))
	case "pgup":
		l.Hover(max(l.cursor-l.pageSize, 0))
	case "pgdown":
		l.Hover(min(l.cursor+l.pageSize, len(l.rows)-1))
	case "enter", " ":
		l.Click(l.cursor)
	case "esc":
		l.Leave()
	}
	return nil
}

// View renders the legend.
func (l *Legend) View() string {
	if len(l.items) == 0 {
		return ""
	}
	if !l.filterShown() {
		return l.table.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, l.filter.View(), l.table.View())
}

func (l *Legend) filterShown() bool {
	return l.filter.Focused() || l.filter.Value() != ""
}

func (l *Legend) mark(id string) {
	l.active = id
	items := make([]Item, len(l.items))
	for i, it := range l.items {
		it.Highlighted = id != "" && it.Identity == id
		items[i] = it
	}
	l.items = items
}

func (l *Legend) rebuild() {
	query := strings.ToLower(l.filter.Value())
	l.rows = l.rows[:0]
	longest := 0
	for i, it := range l.items {
		if query != "" && !strings.Contains(strings.ToLower(it.Label), query) {
			continue
		}
		l.rows = append(l.rows, i)
		longest = max(longest, lipgloss.Width(it.Label))
	}
	if l.cursor >= len(l.rows) {
		l.cursor = max(len(l.rows)-1, 0)
	}

	rows := make([]teatable.Row, 0, len(l.rows))
	for _, idx := range l.rows {
		rows = append(rows, row(l.items[idx]))
	}

	columns := []teatable.Column{
		teatable.NewColumn(columnMarker, "", 3),
		teatable.NewColumn(columnFocus, "", 2),
		teatable.NewColumn(columnLabel, "Legend", max(longest, 20)),
	}

	l.table = teatable.
		New(columns).
		WithRows(rows).
		WithPageSize(l.pageSize).
		Focused(l.focused).
		WithHighlightedRow(l.cursor)
}

func row(it Item) teatable.Row {
	marker := lipgloss.NewStyle().Foreground(lipgloss.Color(it.Marker.Color))
	label := it.Label
	focus := ""
	switch {
	case !it.Visible:
		marker = mutedMarker
		label = hiddenStyle.Render(label)
	case it.Highlighted:
		label = highlightedStyle.Render(label)
	}
	if it.Highlighted {
		focus = "▶"
	}
	return teatable.NewRow(teatable.RowData{
		columnMarker: marker.Render(string(it.Marker.Symbol)),
		columnFocus:  focus,
		columnLabel:  label,
		columnID:     it.Identity,
	})
}
