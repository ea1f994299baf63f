package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/studyous/internal/catalog"
	"github.com/desertthunder/studyous/internal/models"
	"github.com/desertthunder/studyous/internal/shared"
)

var (
	_ list.Item = courseItem{}
	_ list.Item = videoItem{}
)

// courseItem wraps [catalog.Course] to implement [list.Item].
type courseItem struct {
	course catalog.Course
}

func (i courseItem) FilterValue() string { return i.course.Label() }
func (i courseItem) Title() string       { return i.course.Code }
func (i courseItem) Description() string { return i.course.Name }

// videoItem wraps [models.Video] to implement [list.Item].
type videoItem struct {
	video *models.Video
}

func (i videoItem) FilterValue() string { return i.video.Title() }
func (i videoItem) Title() string       { return i.video.Title() }
func (i videoItem) Description() string {
	desc := shared.FormatDate(i.video.CreatedAt())
	if d := i.video.Duration(); d != nil {
		desc = fmt.Sprintf("%s • %s", shared.FormatDuration(*d), desc)
	}
	if d := i.video.Description(); d != nil {
		desc = fmt.Sprintf("%s • %s", desc, *d)
	}
	return desc
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

func videoItems(videos []*models.Video) []list.Item {
	items := make([]list.Item, len(videos))
	for i, v := range videos {
		items[i] = videoItem{video: v}
	}
	return items
}
