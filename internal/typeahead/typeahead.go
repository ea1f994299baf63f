package typeahead

import (
	"github.com/desertthunder/studyous/internal/catalog"
)

// Navigator performs a route transition. The typeahead never reads a result back.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to [Navigator].
type NavigatorFunc func(route string)

// Navigate calls f(route).
func (f NavigatorFunc) Navigate(route string) { f(route) }

// DefaultPanelHeight matches the result panel height used when none is configured.
const DefaultPanelHeight = 6

// Row is one visible result in the panel.
type Row struct {
	Index       int
	Course      catalog.Course
	Highlighted bool
}

// Typeahead is the course search widget state.
//
// All methods must be called from one goroutine, the way a UI event loop delivers input.
type Typeahead struct {
	catalog  catalog.Catalog
	nav      Navigator
	query    string
	results  []catalog.Course
	cursor   Cursor
	viewport Viewport
	selected *catalog.Course
}

// New creates a typeahead over c with an empty query and no highlight.
//
// A nil nav discards navigation. panelHeight <= 0 uses [DefaultPanelHeight].
func New(c catalog.Catalog, nav Navigator, panelHeight int) *Typeahead {
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	if panelHeight <= 0 {
		panelHeight = DefaultPanelHeight
	}

	t := &Typeahead{
		catalog:  c,
		nav:      nav,
		cursor:   None,
		viewport: Viewport{Height: panelHeight},
	}
	t.results = c.Filter("")
	return t
}

// Query returns the current search text.
func (t *Typeahead) Query() string { return t.query }

// Results returns the filtered courses for the current query.
func (t *Typeahead) Results() []catalog.Course {
	return append([]catalog.Course(nil), t.results...)
}

// Cursor returns the highlighted index, normalized against the current results.
func (t *Typeahead) Cursor() Cursor { return t.cursor.Normalize(len(t.results)) }

// Highlighted returns the highlighted course, if any.
func (t *Typeahead) Highlighted() (catalog.Course, bool) {
	c := t.Cursor()
	if c == None {
		return catalog.Course{}, false
	}
	return t.results[c], true
}

// Selected returns the course most recently committed by Confirm or Click.
// Any later query edit clears it.
func (t *Typeahead) Selected() (catalog.Course, bool) {
	if t.selected == nil {
		return catalog.Course{}, false
	}
	return *t.selected, true
}

// PanelVisible reports whether the result panel is shown. It is hidden while the query is empty.
func (t *Typeahead) PanelVisible() bool { return t.query != "" }

// Viewport returns the current panel scroll window.
func (t *Typeahead) Viewport() Viewport { return t.viewport }

// SetPanelHeight resizes the panel and keeps the highlighted row visible.
func (t *Typeahead) SetPanelHeight(h int) {
	if h <= 0 || h == t.viewport.Height {
		return
	}
	t.viewport.Height = h
	t.viewport = t.viewport.Clamp(len(t.results))
	t.reconcile()
}

// VisibleRows returns the result rows inside the viewport. Empty when the panel is hidden.
func (t *Typeahead) VisibleRows() []Row {
	if !t.PanelVisible() {
		return nil
	}

	start, end := t.viewport.Window(len(t.results))
	cursor := t.Cursor()
	rows := make([]Row, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, Row{Index: i, Course: t.results[i], Highlighted: Cursor(i) == cursor})
	}
	return rows
}

// Suggestion returns a "did you mean" course when the query matches nothing.
func (t *Typeahead) Suggestion() (catalog.Course, bool) {
	if len(t.results) > 0 || !t.PanelVisible() {
		return catalog.Course{}, false
	}
	return catalog.Suggest(t.catalog.Courses(), t.query)
}

// SetQuery replaces the query text. It reports whether the text changed.
//
// A change recomputes the results, resets the cursor to [None], scrolls the
// panel back to the top and forgets any committed selection.
func (t *Typeahead) SetQuery(q string) bool {
	if q == t.query {
		return false
	}
	t.setQuery(q)
	t.selected = nil
	return true
}

// Clear empties the query.
func (t *Typeahead) Clear() { t.SetQuery("") }

// MoveNext highlights the next result, wrapping to the first.
func (t *Typeahead) MoveNext() {
	t.cursor = t.cursor.Next(len(t.results))
	t.reconcile()
}

// MovePrev highlights the previous result, wrapping to the last.
func (t *Typeahead) MovePrev() {
	t.cursor = t.cursor.Prev(len(t.results))
	t.reconcile()
}

// Hover highlights result i, as when the pointer enters its row.
// Indices outside the current results are ignored.
func (t *Typeahead) Hover(i int) {
	if !Cursor(i).Valid(len(t.results)) {
		return
	}
	t.cursor = Cursor(i)
	t.reconcile()
}

// Confirm commits the highlighted result from the keyboard.
//
// The query becomes the course label and the cursor resets; no navigation
// happens. With nothing highlighted it does nothing and returns false.
func (t *Typeahead) Confirm() (catalog.Course, bool) {
	course, ok := t.Highlighted()
	if !ok {
		return catalog.Course{}, false
	}

	t.setQuery(course.Label())
	t.selected = &course
	return course, true
}

// Click commits result i from the pointer: the label is written, the
// navigator receives the course route, then the query is cleared.
func (t *Typeahead) Click(i int) (catalog.Course, bool) {
	if !Cursor(i).Valid(len(t.results)) {
		return catalog.Course{}, false
	}
	course := t.results[i]

	t.setQuery(course.Label())
	t.nav.Navigate(catalog.RouteKey(course.Code))
	t.setQuery("")
	t.selected = &course
	return course, true
}

// setQuery runs filter -> cursor reset -> scroll reconciliation.
func (t *Typeahead) setQuery(q string) {
	t.query = q
	t.results = t.catalog.Filter(q)
	t.cursor = None
	t.viewport.Offset = 0
	t.reconcile()
}

// reconcile is the post-transition scroll step. It only acts on a
// highlighted row in a visible panel.
func (t *Typeahead) reconcile() {
	t.cursor = t.cursor.Normalize(len(t.results))
	if t.cursor == None || !t.PanelVisible() {
		return
	}
	t.viewport = t.viewport.Reveal(int(t.cursor))
}
