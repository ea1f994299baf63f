package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/studyous/internal/catalog"
	"github.com/desertthunder/studyous/internal/services"
	"github.com/desertthunder/studyous/internal/shared"
	"github.com/desertthunder/studyous/internal/typeahead"
)

const (
	uploadCourse = iota
	uploadTitle
	uploadDescription
	uploadDuration
	uploadFile
	uploadFieldCount
)

var uploadLabels = [uploadFieldCount]string{"Course", "Title", "Description", "Duration", "File"}

// uploadPage is the upload form. The course field reuses the typeahead without navigation.
type uploadPage struct {
	catalog catalog.Catalog
	course  *typeahead.Typeahead
	fields  [uploadFieldCount]textinput.Model
	active  int
	busy    bool
	err     error
}

func newUploadPage(c catalog.Catalog, code string) *uploadPage {
	p := &uploadPage{
		catalog: c,
		course:  typeahead.New(c, typeahead.NavigatorFunc(func(string) {}), 4),
	}

	placeholders := [uploadFieldCount]string{
		"Type to search courses",
		"Video title",
		"Optional",
		"Seconds, optional",
		"Path to an mp4, mov, avi, webm or mkv file",
	}
	for i := range p.fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = 256
		p.fields[i] = in
	}
	p.fields[uploadDescription].CharLimit = 1000

	if course, ok := c.Find(code); ok && p.preselect(course) {
		p.active = uploadTitle
	}
	return p
}

// preselect confirms course in the course field as if it had been picked from the panel.
func (p *uploadPage) preselect(course catalog.Course) bool {
	p.course.SetQuery(course.Code)
	for i, r := range p.course.Results() {
		if r.Code == course.Code {
			p.course.Hover(i)
			if _, ok := p.course.Confirm(); ok {
				p.fields[uploadCourse].SetValue(p.course.Query())
				return true
			}
		}
	}
	p.course.Clear()
	return false
}

// focus moves keyboard focus to the current field.
func (p *uploadPage) focus() tea.Cmd {
	var cmd tea.Cmd
	for i := range p.fields {
		if i == p.active {
			cmd = p.fields[i].Focus()
		} else {
			p.fields[i].Blur()
		}
	}
	return cmd
}

// courseCode resolves the course field to a code: a confirmed selection, or text
// that exactly names a course code or label.
func (p *uploadPage) courseCode() string {
	query := p.course.Query()
	if course, ok := p.course.Selected(); ok && query == course.Label() {
		return course.Code
	}

	text := strings.TrimSpace(query)
	if code, _, ok := strings.Cut(text, " - "); ok {
		text = code
	}
	if course, ok := p.catalog.Find(text); ok {
		return course.Code
	}
	return text
}

// choosing reports whether the course field holds typed text that is not a confirmed course.
func (p *uploadPage) choosing() bool {
	if !p.course.PanelVisible() {
		return false
	}
	course, ok := p.course.Selected()
	return !ok || course.Label() != p.course.Query()
}

// request builds the upload request from the form.
func (p *uploadPage) request() (services.UploadRequest, error) {
	req := services.UploadRequest{
		CourseCode:  p.courseCode(),
		Title:       p.fields[uploadTitle].Value(),
		Description: p.fields[uploadDescription].Value(),
		FilePath:    strings.TrimSpace(p.fields[uploadFile].Value()),
	}
	if raw := strings.TrimSpace(p.fields[uploadDuration].Value()); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("%w: duration must be a whole number of seconds", shared.ErrInvalidInput)
		}
		req.Duration = &d
	}
	return req, nil
}

func (m *Model) updateUpload(msg tea.KeyMsg) tea.Cmd {
	p := m.upload
	if p.busy {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.back):
		if p.active == uploadCourse && p.choosing() {
			p.course.Clear()
			p.fields[uploadCourse].SetValue("")
			return nil
		}
		return m.back()
	case key.Matches(msg, m.keys.next):
		p.active = (p.active + 1) % uploadFieldCount
		return p.focus()
	case key.Matches(msg, m.keys.prev):
		p.active = (p.active + uploadFieldCount - 1) % uploadFieldCount
		return p.focus()
	case key.Matches(msg, m.keys.submit):
		return m.submitUpload()
	}

	if p.active == uploadCourse {
		return p.updateCourse(msg)
	}

	if msg.String() == "enter" {
		if p.active == uploadFile {
			return m.submitUpload()
		}
		p.active++
		return p.focus()
	}

	var cmd tea.Cmd
	p.fields[p.active], cmd = p.fields[p.active].Update(msg)
	return cmd
}

func (p *uploadPage) updateCourse(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "down", "ctrl+n":
		p.course.MoveNext()
		return nil
	case "up", "ctrl+p":
		p.course.MovePrev()
		return nil
	case "enter":
		if _, ok := p.course.Confirm(); ok {
			p.fields[uploadCourse].SetValue(p.course.Query())
			p.fields[uploadCourse].CursorEnd()
			return nil
		}
		p.active = uploadTitle
		return p.focus()
	}

	var cmd tea.Cmd
	p.fields[uploadCourse], cmd = p.fields[uploadCourse].Update(msg)
	p.course.SetQuery(p.fields[uploadCourse].Value())
	return cmd
}

func (m *Model) submitUpload() tea.Cmd {
	p := m.upload
	if _, err := m.deps.Sessions.Session(); err != nil {
		p.err = fmt.Errorf("log in with `studyous auth login` before uploading: %w", err)
		return nil
	}

	req, err := p.request()
	if err != nil {
		p.err = err
		return nil
	}
	if _, err := m.deps.Videos.ValidateUpload(req); err != nil {
		p.err = err
		return nil
	}

	p.err = nil
	p.busy = true
	ctx := m.ctx
	m.logger.Info("uploading video", "course", req.CourseCode, "file", req.FilePath)
	return func() tea.Msg {
		video, err := m.deps.Videos.Upload(ctx, req)
		return uploadDoneMsg(video, err)
	}
}

func (m *Model) viewUpload() string {
	p := m.upload
	var b strings.Builder
	b.WriteString(styles.title.Render("Upload a video") + "\n")

	for i := range p.fields {
		label := fmt.Sprintf("%-12s", uploadLabels[i])
		if i == p.active {
			label = styles.focused.Render(label)
		} else {
			label = styles.label.Render(label)
		}
		b.WriteString(label + " " + p.fields[i].View() + "\n")

		if i == uploadCourse && p.active == uploadCourse && p.choosing() {
			if panel := panelView(p.course, max(min(m.width-16, 60), 20)); panel != "" {
				b.WriteString(indent(panel, 13) + "\n")
			}
		}
	}

	b.WriteString("\n")
	switch {
	case p.busy:
		b.WriteString(styles.warn.Render("Uploading..."))
	case p.err != nil:
		b.WriteString(styles.err.Render(p.err.Error()))
	default:
		b.WriteString(styles.help.Render("tab to move between fields, ctrl+s to upload"))
	}
	return b.String()
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
