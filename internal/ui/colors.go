package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#500000", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title     lipgloss.Style
	ok        lipgloss.Style
	err       lipgloss.Style
	warn      lipgloss.Style
	help      lipgloss.Style
	brand     lipgloss.Style
	highlight lipgloss.Style
	row       lipgloss.Style
	label     lipgloss.Style
	focused   lipgloss.Style
}

// NewPalette builds the stylesheet from the primary, success, error, warning and muted colors.
func NewPalette(p, s, e, w, h string) *Palette {
	return &Palette{
		title:     NewBold(p).MarginBottom(1),
		ok:        NewBold(s),
		err:       NewBold(e),
		warn:      NewStyle(w),
		help:      NewEm(h),
		brand:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(p)).Padding(0, 1),
		highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(p)),
		row:       lipgloss.NewStyle().PaddingLeft(1),
		label:     NewBold(h),
		focused:   NewBold(p),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
