package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/studyous/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgVideosLoaded MsgKind = iota
	MsgVideoLoaded
	MsgProfileLoaded
	MsgProfileSaved
	MsgUploadDone
	MsgBrowserOpened
)

type videosPayload struct {
	route  string
	videos []*models.Video
	err    error
}

type videoPayload struct {
	video    *models.Video
	uploader models.Profile
	err      error
}

type profilePayload struct {
	profile models.Profile
	uploads []*models.Video
	owner   bool
	err     error
}

type uploadPayload struct {
	video *models.Video
	err   error
}

// videosLoadedMsg is the constructor for [MsgVideosLoaded]. route identifies the page that asked for the list.
func videosLoadedMsg(route string, videos []*models.Video, err error) Msg {
	return Msg{kind: MsgVideosLoaded, data: videosPayload{route, videos, err}}
}

// videoLoadedMsg is the constructor for [MsgVideoLoaded]
func videoLoadedMsg(video *models.Video, uploader models.Profile, err error) Msg {
	return Msg{kind: MsgVideoLoaded, data: videoPayload{video, uploader, err}}
}

// profileLoadedMsg is the constructor for [MsgProfileLoaded]
func profileLoadedMsg(profile models.Profile, uploads []*models.Video, owner bool, err error) Msg {
	return Msg{kind: MsgProfileLoaded, data: profilePayload{profile, uploads, owner, err}}
}

// profileSavedMsg is the constructor for [MsgProfileSaved]
func profileSavedMsg(profile models.Profile, err error) Msg {
	return Msg{kind: MsgProfileSaved, data: profilePayload{profile: profile, owner: true, err: err}}
}

// uploadDoneMsg is the constructor for [MsgUploadDone]
func uploadDoneMsg(video *models.Video, err error) Msg {
	return Msg{kind: MsgUploadDone, data: uploadPayload{video, err}}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(err error) Msg {
	return Msg{kind: MsgBrowserOpened, data: err}
}
