package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/studyous/internal/catalog"
	"github.com/desertthunder/studyous/internal/models"
	"github.com/desertthunder/studyous/internal/services"
	"github.com/desertthunder/studyous/internal/shared"
	"github.com/desertthunder/studyous/internal/typeahead"
	"golang.org/x/sync/errgroup"
)

var _ typeahead.Navigator = (*Model)(nil)

// VideoSource is the subset of [services.VideoService] the TUI uses.
type VideoSource interface {
	List(courseCode, search string) ([]*models.Video, error)
	Get(id string) (*models.Video, error)
	ListByUploader(userID string) ([]*models.Video, error)
	ValidateUpload(req services.UploadRequest) (catalog.Course, error)
	Upload(ctx context.Context, req services.UploadRequest) (*models.Video, error)
}

// ProfileSource is the subset of [services.ProfileService] the TUI uses.
type ProfileSource interface {
	Get(id string) (models.Profile, error)
	IsOwner(id string) bool
	Update(id string, update services.ProfileUpdate) (models.Profile, error)
}

// SessionSource reports the logged-in user. [services.AuthService] implements it.
type SessionSource interface {
	Session() (*services.Session, error)
}

// Deps holds the collaborators of the TUI.
type Deps struct {
	Catalog     catalog.Catalog
	Videos      VideoSource
	Profiles    ProfileSource
	Sessions    SessionSource
	PanelHeight int
	OpenURL     func(string) error // defaults to [shared.OpenBrowser]
	Logger      *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	deps    Deps
	logger  *log.Logger
	route   Route
	history []Route
	pending tea.Cmd
	search  *SearchBar
	width   int
	height  int
	status  string
	err     error
	help    help.Model
	keys    keyMap

	courses *coursesPage
	videos  *videosPage
	watch   *watchPage
	profile *profilePage
	upload  *uploadPage
}

// NewModel creates a new TUI model on the courses page.
func NewModel(ctx context.Context, deps Deps) *Model {
	if deps.OpenURL == nil {
		deps.OpenURL = shared.OpenBrowser
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}

	m := &Model{
		ctx:    ctx,
		deps:   deps,
		logger: shared.WithLogger(deps.Logger, "component", "tui"),
		route:  Route{Page: CoursesPage},
		help:   help.New(),
		keys:   newKeyMap(),
		width:  80,
		height: 24,
	}
	m.search = NewSearchBar(deps.Catalog, m, deps.PanelHeight)
	m.courses = newCoursesPage(deps.Catalog)
	m.layout()
	return m
}

// Route returns the current route.
func (m *Model) Route() Route { return m.route }

// Search exposes the course search bar.
func (m *Model) Search() *SearchBar { return m.search }

// Navigate implements [typeahead.Navigator]. The page loads on the next update cycle.
func (m *Model) Navigate(route string) {
	m.visit(ParseRoute(route))
}

func (m *Model) visit(r Route) {
	m.logger.Debug("navigate", "from", m.route.String(), "to", r.String())
	if r != m.route {
		m.history = append(m.history, m.route)
	}
	m.route = r
	m.err = nil
	m.status = ""
	m.search.Blur()
	m.pending = m.enter(r)
}

// back returns to the previous route, or the courses page when there is none.
func (m *Model) back() tea.Cmd {
	prev := Route{Page: CoursesPage}
	if n := len(m.history); n > 0 {
		prev = m.history[n-1]
		m.history = m.history[:n-1]
	}
	m.route = prev
	m.err = nil
	m.status = ""
	return m.enter(prev)
}

// enter prepares page state for r and returns its load command.
func (m *Model) enter(r Route) tea.Cmd {
	switch r.Page {
	case VideosPage:
		course, ok := m.deps.Catalog.Find(r.Arg)
		if !ok {
			course = catalog.Course{Code: r.Arg}
		}
		m.videos = newVideosPage(course)
		return m.loadVideos(r.String(), course.Code, "")
	case WatchPage:
		m.watch = &watchPage{id: r.Arg}
		return m.loadVideo(r.Arg)
	case ProfilePage:
		m.profile = newProfilePage(r.Arg)
		return m.loadProfile(r.Arg)
	case UploadPage:
		m.upload = newUploadPage(m.deps.Catalog, r.Arg)
		if _, err := m.deps.Sessions.Session(); err != nil {
			m.upload.err = fmt.Errorf("log in with `studyous auth login` before uploading: %w", err)
		}
		return m.upload.focus()
	}
	return nil
}

// takePending returns and clears the load command queued by Navigate.
func (m *Model) takePending() tea.Cmd {
	cmd := m.pending
	m.pending = nil
	return cmd
}

// Init implements [tea.Model].
func (m *Model) Init() tea.Cmd {
	return m.takePending()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		if m.route.ShowsSearch() {
			_, cmd = m.search.Update(msg)
		}

	case Msg:
		cmd = m.handleMsg(msg)
	}

	m.layout()
	return m, tea.Batch(cmd, m.takePending())
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if m.search.Focused() {
		if msg.String() == "esc" {
			m.search.Reset()
			m.search.Blur()
			return nil
		}
		_, cmd := m.search.Update(msg)
		return cmd
	}

	if m.pageTyping() {
		return m.updatePage(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	case key.Matches(msg, m.keys.search) && m.route.ShowsSearch():
		return m.search.Focus()
	case key.Matches(msg, m.keys.back) && m.route.Page != CoursesPage:
		return m.back()
	}
	return m.updatePage(msg)
}

// pageTyping reports whether a text field on the current page has focus.
func (m *Model) pageTyping() bool {
	switch m.route.Page {
	case VideosPage:
		return m.videos != nil && m.videos.query.Focused()
	case ProfilePage:
		return m.profile != nil && m.profile.editing
	case UploadPage:
		return m.upload != nil
	}
	return false
}

func (m *Model) updatePage(msg tea.KeyMsg) tea.Cmd {
	switch m.route.Page {
	case CoursesPage:
		return m.updateCourses(msg)
	case VideosPage:
		return m.updateVideos(msg)
	case WatchPage:
		return m.updateWatch(msg)
	case ProfilePage:
		return m.updateProfile(msg)
	case UploadPage:
		return m.updateUpload(msg)
	}
	return nil
}

func (m *Model) handleMsg(msg Msg) tea.Cmd {
	switch msg.kind {
	case MsgVideosLoaded:
		p := msg.data.(videosPayload)
		if m.route.String() == p.route && m.videos != nil {
			m.videos.setVideos(p.videos, p.err)
		}
	case MsgVideoLoaded:
		p := msg.data.(videoPayload)
		if m.watch != nil && (p.video == nil || p.video.ID() == m.watch.id) {
			m.watch.video, m.watch.uploader, m.watch.err = p.video, p.uploader, p.err
		}
	case MsgProfileLoaded:
		p := msg.data.(profilePayload)
		if m.profile != nil && (p.err != nil || p.profile.ID == m.profile.id) {
			m.profile.load(p)
		}
	case MsgProfileSaved:
		p := msg.data.(profilePayload)
		if m.profile != nil {
			m.profile.saved(p)
		}
	case MsgUploadDone:
		p := msg.data.(uploadPayload)
		if m.upload == nil {
			return nil
		}
		m.upload.busy = false
		if p.err != nil {
			m.upload.err = p.err
			return nil
		}
		m.visit(Route{Page: WatchPage, Arg: p.video.ID()})
		m.status = "Uploaded " + p.video.Title()
	case MsgBrowserOpened:
		if err, _ := msg.data.(error); err != nil {
			m.err = err
		} else {
			m.status = "Opened in browser"
		}
	}
	return nil
}

// layout sizes the search bar and pages for the current window.
func (m *Model) layout() {
	m.search.SetWidth(min(m.width-2, 72))
	m.search.SetOrigin(1)
	m.help.Width = m.width

	avail := m.height - 4
	if m.route.ShowsSearch() {
		avail -= m.search.Height()
	}
	if avail < 3 {
		avail = 3
	}
	if m.courses != nil {
		m.courses.list.SetSize(m.width-2, avail)
	}
	if m.videos != nil {
		m.videos.list.SetSize(m.width-2, avail-3)
	}
}

// View renders the UI based on the current route.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")

	if m.route.ShowsSearch() {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.route.Page {
	case CoursesPage:
		b.WriteString(m.viewCourses())
	case VideosPage:
		b.WriteString(m.viewVideos())
	case WatchPage:
		b.WriteString(m.viewWatch())
	case ProfilePage:
		b.WriteString(m.viewProfile())
	case UploadPage:
		b.WriteString(m.viewUpload())
	}

	if m.err != nil {
		b.WriteString("\n" + styles.err.Render("Error: "+m.err.Error()))
	}
	if m.status != "" {
		b.WriteString("\n" + styles.ok.Render(m.status))
	}

	b.WriteString("\n\n" + m.help.ShortHelpView(m.pageHelp()))
	return b.String()
}

func (m *Model) header() string {
	who := styles.help.Render("not logged in")
	if s, err := m.deps.Sessions.Session(); err == nil {
		who = styles.label.Render("@" + s.Username)
	}
	return styles.brand.Render("studyous") + "  " + who
}

func (m *Model) pageHelp() []key.Binding {
	if m.search.Focused() {
		return []key.Binding{
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "highlight")),
			key.NewBinding(key.WithKeys("click"), key.WithHelp("click", "open")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	switch m.route.Page {
	case CoursesPage:
		return []key.Binding{m.keys.search, m.keys.enter, m.keys.upload, m.keys.quit}
	case VideosPage:
		return []key.Binding{m.keys.enter, m.keys.filter, m.keys.upload, m.keys.back, m.keys.quit}
	case WatchPage:
		return []key.Binding{m.keys.open, m.keys.uploader, m.keys.back, m.keys.quit}
	case ProfilePage:
		if m.profile != nil && m.profile.owner && !m.profile.editing {
			return []key.Binding{m.keys.edit, m.keys.enter, m.keys.back, m.keys.quit}
		}
		return []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	case UploadPage:
		return []key.Binding{m.keys.next, m.keys.prev, m.keys.submit, m.keys.back}
	}
	return m.keys.ShortHelp()
}

func (m *Model) loadVideos(route, code, search string) tea.Cmd {
	return func() tea.Msg {
		videos, err := m.deps.Videos.List(code, search)
		return videosLoadedMsg(route, videos, err)
	}
}

func (m *Model) loadVideo(id string) tea.Cmd {
	return func() tea.Msg {
		video, err := m.deps.Videos.Get(id)
		if err != nil {
			return videoLoadedMsg(nil, models.Profile{}, err)
		}
		uploader, err := m.deps.Profiles.Get(video.UploaderID())
		if err != nil && !errors.Is(err, shared.ErrUserNotFound) {
			return videoLoadedMsg(video, models.Profile{}, err)
		}
		return videoLoadedMsg(video, uploader, nil)
	}
}

// loadProfile fetches the profile and its uploads concurrently.
func (m *Model) loadProfile(id string) tea.Cmd {
	return func() tea.Msg {
		var (
			profile models.Profile
			uploads []*models.Video
			g       errgroup.Group
		)
		g.Go(func() (err error) {
			profile, err = m.deps.Profiles.Get(id)
			return err
		})
		g.Go(func() (err error) {
			uploads, err = m.deps.Videos.ListByUploader(id)
			return err
		})

		if err := g.Wait(); err != nil {
			return profileLoadedMsg(models.Profile{}, nil, false, err)
		}
		return profileLoadedMsg(profile, uploads, m.deps.Profiles.IsOwner(id), nil)
	}
}

func (m *Model) openURL(url string) tea.Cmd {
	return func() tea.Msg {
		return browserOpenedMsg(m.deps.OpenURL(url))
	}
}
