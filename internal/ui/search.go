package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/studyous/internal/catalog"
	"github.com/desertthunder/studyous/internal/typeahead"
	"github.com/mattn/go-runewidth"
)

const searchPlaceholder = "Search for a course (e.g. CSCE 121)"

// SearchEvent reports what a message did to the search bar.
type SearchEvent int

const (
	SearchIgnored   SearchEvent = iota // message was not for the search bar
	SearchHandled                      // consumed without committing
	SearchConfirmed                    // keyboard confirm wrote a course label
	SearchOpened                       // a course page was opened
)

// SearchBar is the course typeahead rendered as a text input with a result panel below it.
type SearchBar struct {
	input   textinput.Model
	ta      *typeahead.Typeahead
	width   int
	originY int
}

// NewSearchBar creates a search bar over c. Clicking a result navigates through nav.
func NewSearchBar(c catalog.Catalog, nav typeahead.Navigator, panelHeight int) *SearchBar {
	input := textinput.New()
	input.Placeholder = searchPlaceholder
	input.Prompt = "🔍 "
	input.CharLimit = 64

	return &SearchBar{
		input: input,
		ta:    typeahead.New(c, nav, panelHeight),
		width: 60,
	}
}

// Widget exposes the underlying typeahead state.
func (s *SearchBar) Widget() *typeahead.Typeahead { return s.ta }

// Focus gives the input keyboard focus.
func (s *SearchBar) Focus() tea.Cmd { return s.input.Focus() }

// Blur removes keyboard focus.
func (s *SearchBar) Blur() { s.input.Blur() }

// Focused reports whether the input has keyboard focus.
func (s *SearchBar) Focused() bool { return s.input.Focused() }

// SetWidth sets the rendered width of the input and panel.
func (s *SearchBar) SetWidth(w int) {
	if w < 20 {
		w = 20
	}
	s.width = w
	s.input.Width = w - runewidth.StringWidth(s.input.Prompt) - 1
}

// SetOrigin records the screen row the input is drawn on, for mouse hit-testing.
func (s *SearchBar) SetOrigin(y int) { s.originY = y }

// Reset clears the query and input.
func (s *SearchBar) Reset() {
	s.ta.Clear()
	s.syncInput()
}

// syncInput copies the widget query back into the text input after a commit.
func (s *SearchBar) syncInput() {
	if s.input.Value() != s.ta.Query() {
		s.input.SetValue(s.ta.Query())
		s.input.CursorEnd()
	}
}

// Update routes key and mouse messages to the typeahead.
func (s *SearchBar) Update(msg tea.Msg) (SearchEvent, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !s.Focused() {
			return SearchIgnored, nil
		}
		return s.handleKey(msg)
	case tea.MouseMsg:
		return s.handleMouse(msg)
	}
	return SearchIgnored, nil
}

func (s *SearchBar) handleKey(msg tea.KeyMsg) (SearchEvent, tea.Cmd) {
	switch msg.String() {
	case "down", "ctrl+n":
		s.ta.MoveNext()
		return SearchHandled, nil
	case "up", "ctrl+p":
		s.ta.MovePrev()
		return SearchHandled, nil
	case "enter":
		if _, ok := s.ta.Confirm(); ok {
			s.syncInput()
			return SearchConfirmed, nil
		}
		return SearchHandled, nil
	case "esc":
		return SearchIgnored, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.ta.SetQuery(s.input.Value())
	return SearchHandled, cmd
}

func (s *SearchBar) handleMouse(msg tea.MouseMsg) (SearchEvent, tea.Cmd) {
	idx, ok := s.rowAt(msg.X, msg.Y)
	if !ok {
		return SearchIgnored, nil
	}

	switch {
	case msg.Action == tea.MouseActionMotion:
		s.ta.Hover(idx)
		return SearchHandled, nil
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if _, ok := s.ta.Click(idx); ok {
			s.syncInput()
			s.Blur()
			return SearchOpened, nil
		}
	}
	return SearchHandled, nil
}

// rowAt maps a screen cell to a result index. Rows start on the line below the input.
func (s *SearchBar) rowAt(x, y int) (int, bool) {
	if x < 0 || x >= s.width {
		return 0, false
	}
	rows := s.ta.VisibleRows()
	k := y - s.originY - 1
	if k < 0 || k >= len(rows) {
		return 0, false
	}
	return rows[k].Index, true
}

// Height returns the number of lines View renders.
func (s *SearchBar) Height() int {
	return strings.Count(s.View(), "\n") + 1
}

// View renders the input and, while a query is being typed, the result panel.
// The panel is hidden once the query holds a confirmed course label.
func (s *SearchBar) View() string {
	if course, ok := s.ta.Selected(); ok && course.Label() == s.ta.Query() {
		return s.input.View()
	}
	if panel := panelView(s.ta, s.width); panel != "" {
		return s.input.View() + "\n" + panel
	}
	return s.input.View()
}

// panelView renders the visible result rows of ta, or the empty-result rows. It returns ""
// while the panel is hidden.
func panelView(ta *typeahead.Typeahead, width int) string {
	if !ta.PanelVisible() {
		return ""
	}

	rows := ta.VisibleRows()
	if len(rows) == 0 {
		lines := []string{styles.row.Render(styles.help.Render("No courses found"))}
		if course, ok := ta.Suggestion(); ok {
			lines = append(lines, styles.row.Render(styles.help.Render("Did you mean "+course.Label()+"?")))
		}
		return strings.Join(lines, "\n")
	}

	lines := make([]string, 0, len(rows)+1)
	for _, row := range rows {
		lines = append(lines, renderRow(row, width))
	}

	total := len(ta.Results())
	if vp := ta.Viewport(); total > vp.Height {
		start, end := vp.Window(total)
		lines = append(lines, styles.row.Render(styles.help.Render(fmt.Sprintf("%d-%d of %d", start+1, end, total))))
	}
	return strings.Join(lines, "\n")
}

func renderRow(row typeahead.Row, width int) string {
	text := " " + row.Course.Label()
	text = runewidth.Truncate(text, width, "…")
	text = runewidth.FillRight(text, width)
	if row.Highlighted {
		return styles.highlight.Render(text)
	}
	return text
}
