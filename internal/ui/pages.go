package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/studyous/internal/catalog"
	"github.com/desertthunder/studyous/internal/models"
	"github.com/desertthunder/studyous/internal/services"
	"github.com/desertthunder/studyous/internal/shared"
)

// coursesPage lists the whole catalog.
type coursesPage struct {
	list list.Model
}

func newCoursesPage(c catalog.Catalog) *coursesPage {
	courses := c.Courses()
	items := make([]list.Item, len(courses))
	for i, course := range courses {
		items[i] = courseItem{course: course}
	}
	return &coursesPage{list: newList("Courses", items)}
}

func (m *Model) updateCourses(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.courses.list.SelectedItem().(courseItem); ok {
			m.visit(Route{Page: VideosPage, Arg: item.course.Code})
		}
		return nil
	case key.Matches(msg, m.keys.upload):
		m.visit(Route{Page: UploadPage})
		return nil
	}

	var cmd tea.Cmd
	m.courses.list, cmd = m.courses.list.Update(msg)
	return cmd
}

func (m *Model) viewCourses() string {
	return m.courses.list.View()
}

// videosPage shows one course's videos with a search box.
type videosPage struct {
	course  catalog.Course
	query   textinput.Model
	applied string
	list    list.Model
	loaded  bool
	err     error
}

func newVideosPage(course catalog.Course) *videosPage {
	query := textinput.New()
	query.Placeholder = "Search videos by title or description"
	query.Prompt = "› "
	query.CharLimit = 100

	return &videosPage{course: course, query: query, list: newList("Videos", nil)}
}

func (p *videosPage) setVideos(videos []*models.Video, err error) {
	p.loaded = true
	p.err = err
	p.list.SetItems(videoItems(videos))
	p.list.Title = fmt.Sprintf("Videos (%d)", len(videos))
}

func (m *Model) updateVideos(msg tea.KeyMsg) tea.Cmd {
	p := m.videos
	route := m.route.String()

	if p.query.Focused() {
		switch msg.String() {
		case "enter":
			p.query.Blur()
			p.applied = strings.TrimSpace(p.query.Value())
			return m.loadVideos(route, p.course.Code, p.applied)
		case "esc":
			p.query.Blur()
			p.query.SetValue("")
			if p.applied == "" {
				return nil
			}
			p.applied = ""
			return m.loadVideos(route, p.course.Code, "")
		}
		var cmd tea.Cmd
		p.query, cmd = p.query.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.filter):
		return p.query.Focus()
	case key.Matches(msg, m.keys.upload):
		m.visit(Route{Page: UploadPage, Arg: p.course.Code})
		return nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := p.list.SelectedItem().(videoItem); ok {
			m.visit(Route{Page: WatchPage, Arg: item.video.ID()})
		}
		return nil
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return cmd
}

func (m *Model) viewVideos() string {
	p := m.videos
	var b strings.Builder

	title := p.course.Code
	if p.course.Name != "" {
		title = p.course.Label()
	}
	b.WriteString(styles.title.Render(title) + "\n")
	b.WriteString(p.query.View() + "\n")
	if p.applied != "" {
		b.WriteString(styles.help.Render(fmt.Sprintf("Showing results for %q (esc in the search box clears)", p.applied)) + "\n")
	}

	switch {
	case !p.loaded:
		b.WriteString(styles.help.Render("Loading videos..."))
	case p.err != nil:
		b.WriteString(styles.err.Render("Could not load videos: " + p.err.Error()))
	case len(p.list.Items()) == 0 && p.applied != "":
		b.WriteString(styles.help.Render("No videos match your search."))
	case len(p.list.Items()) == 0:
		b.WriteString(styles.help.Render("No videos yet. Press n to upload the first one."))
	default:
		b.WriteString(p.list.View())
	}
	return b.String()
}

// watchPage shows a single video.
type watchPage struct {
	id       string
	video    *models.Video
	uploader models.Profile
	err      error
}

func (m *Model) updateWatch(msg tea.KeyMsg) tea.Cmd {
	v := m.watch.video
	if v == nil {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.open):
		return m.openURL(v.URL())
	case key.Matches(msg, m.keys.uploader):
		m.visit(Route{Page: ProfilePage, Arg: v.UploaderID()})
	}
	return nil
}

func (m *Model) viewWatch() string {
	w := m.watch
	switch {
	case w.err != nil:
		return styles.err.Render("Could not load video: " + w.err.Error())
	case w.video == nil:
		return styles.help.Render("Loading video...")
	}

	v := w.video
	var b strings.Builder
	b.WriteString(styles.title.Render(v.Title()) + "\n")

	course := v.CourseCode()
	if c, ok := m.deps.Catalog.Find(course); ok {
		course = c.Label()
	}
	fields := [][2]string{
		{"Course", course},
		{"Uploaded", shared.FormatDate(v.CreatedAt())},
	}
	if d := v.Duration(); d != nil {
		fields = append(fields, [2]string{"Duration", shared.FormatDuration(*d)})
	}
	uploader := "unknown"
	if w.uploader.ID != "" {
		uploader = fmt.Sprintf("%s %s (@%s)", w.uploader.FirstName, w.uploader.LastName, w.uploader.Username)
	}
	fields = append(fields, [2]string{"Uploader", uploader}, [2]string{"URL", v.URL()})

	for _, f := range fields {
		b.WriteString(styles.label.Render(fmt.Sprintf("%-9s", f[0])) + " " + f[1] + "\n")
	}
	if d := v.Description(); d != nil {
		b.WriteString("\n" + *d + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

const (
	fieldFirstName = iota
	fieldLastName
	fieldUsername
)

// profilePage shows a user's public profile and uploads, with an edit form for the owner.
type profilePage struct {
	id       string
	profile  models.Profile
	uploads  []*models.Video
	cursor   int
	owner    bool
	loaded   bool
	editing  bool
	inputs   []textinput.Model
	focusIdx int
	err      error
	notice   string
}

func newProfilePage(id string) *profilePage {
	inputs := make([]textinput.Model, 3)
	for i, label := range []string{"First name", "Last name", "Username"} {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-11s", label) + " "
		in.CharLimit = 64
		inputs[i] = in
	}
	return &profilePage{id: id, inputs: inputs}
}

func (p *profilePage) load(payload profilePayload) {
	p.loaded = true
	p.err = payload.err
	p.profile = payload.profile
	p.uploads = payload.uploads
	p.owner = payload.owner
	p.cursor = 0
}

func (p *profilePage) saved(payload profilePayload) {
	if payload.err != nil {
		p.err = payload.err
		return
	}
	p.err = nil
	p.profile = payload.profile
	p.editing = false
	p.notice = "Profile saved"
}

func (p *profilePage) startEdit() tea.Cmd {
	p.editing = true
	p.err = nil
	p.notice = ""
	p.inputs[fieldFirstName].SetValue(p.profile.FirstName)
	p.inputs[fieldLastName].SetValue(p.profile.LastName)
	p.inputs[fieldUsername].SetValue(p.profile.Username)
	p.focusIdx = 0
	return p.focusInput()
}

func (p *profilePage) focusInput() tea.Cmd {
	var cmd tea.Cmd
	for i := range p.inputs {
		if i == p.focusIdx {
			cmd = p.inputs[i].Focus()
		} else {
			p.inputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) updateProfile(msg tea.KeyMsg) tea.Cmd {
	p := m.profile

	if p.editing {
		switch {
		case key.Matches(msg, m.keys.back):
			p.editing = false
			p.err = nil
			return nil
		case key.Matches(msg, m.keys.next), msg.String() == "down":
			p.focusIdx = (p.focusIdx + 1) % len(p.inputs)
			return p.focusInput()
		case key.Matches(msg, m.keys.prev), msg.String() == "up":
			p.focusIdx = (p.focusIdx + len(p.inputs) - 1) % len(p.inputs)
			return p.focusInput()
		case key.Matches(msg, m.keys.enter), key.Matches(msg, m.keys.submit):
			return m.saveProfile()
		}
		var cmd tea.Cmd
		p.inputs[p.focusIdx], cmd = p.inputs[p.focusIdx].Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.edit) && p.owner && p.err == nil:
		return p.startEdit()
	case key.Matches(msg, m.keys.down):
		if p.cursor < len(p.uploads)-1 {
			p.cursor++
		}
	case key.Matches(msg, m.keys.up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, m.keys.enter):
		if p.cursor < len(p.uploads) {
			m.visit(Route{Page: WatchPage, Arg: p.uploads[p.cursor].ID()})
		}
	}
	return nil
}

func (m *Model) saveProfile() tea.Cmd {
	p := m.profile
	id := p.id
	update := services.ProfileUpdate{
		FirstName: p.inputs[fieldFirstName].Value(),
		LastName:  p.inputs[fieldLastName].Value(),
		Username:  p.inputs[fieldUsername].Value(),
	}
	return func() tea.Msg {
		profile, err := m.deps.Profiles.Update(id, update)
		return profileSavedMsg(profile, err)
	}
}

func (m *Model) viewProfile() string {
	p := m.profile
	if !p.loaded {
		return styles.help.Render("Loading profile...")
	}
	if p.profile.ID == "" && p.err != nil {
		return styles.err.Render("Could not load profile: " + p.err.Error())
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(strings.TrimSpace(p.profile.FirstName+" "+p.profile.LastName)) + "\n")
	b.WriteString(styles.label.Render("@"+p.profile.Username) + "\n\n")

	if p.editing {
		for i := range p.inputs {
			b.WriteString(p.inputs[i].View() + "\n")
		}
		b.WriteString(styles.help.Render("enter to save, esc to cancel") + "\n")
	}
	if p.err != nil {
		b.WriteString(styles.err.Render(p.err.Error()) + "\n")
	}
	if p.notice != "" {
		b.WriteString(styles.ok.Render(p.notice) + "\n")
	}

	b.WriteString("\n" + styles.label.Render(fmt.Sprintf("Uploads (%d)", len(p.uploads))) + "\n")
	if len(p.uploads) == 0 {
		b.WriteString(styles.help.Render("No uploads yet."))
	}
	for i, v := range p.uploads {
		line := fmt.Sprintf("%s  %s  %s", v.CourseCode(), v.Title(), styles.help.Render(shared.FormatDate(v.CreatedAt())))
		if i == p.cursor && !p.editing {
			b.WriteString(styles.focused.Render("› ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
