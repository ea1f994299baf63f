package models

import (
	"fmt"
	"strings"
	"time"
)

var _ Model = (*Video)(nil)

// Video is an uploaded course video.
//
// Description and Duration are optional; nil means "not provided".
type Video struct {
	base
	title       string
	description *string
	courseCode  string
	duration    *int
	url         string
	storageKey  string
	uploaderID  string
}

// NewVideo creates a video with timestamps set to now.
func NewVideo(sequence int, title, courseCode, uploaderID string) *Video {
	return &Video{
		base:       newBase(sequence),
		title:      title,
		courseCode: courseCode,
		uploaderID: uploaderID,
	}
}

func (v *Video) Title() string              { return v.title }
func (v *Video) Description() *string       { return v.description }
func (v *Video) SetDescription(d *string)   { v.description = d }
func (v *Video) CourseCode() string         { return v.courseCode }
func (v *Video) Duration() *int             { return v.duration }
func (v *Video) SetDuration(d *int)         { v.duration = d }
func (v *Video) URL() string                { return v.url }
func (v *Video) SetURL(u string)            { v.url = u }
func (v *Video) StorageKey() string         { return v.storageKey }
func (v *Video) SetStorageKey(k string)     { v.storageKey = k }
func (v *Video) UploaderID() string         { return v.uploaderID }

// Validate checks required fields.
func (v *Video) Validate() error {
	switch {
	case v.id == "":
		return fmt.Errorf("video ID is required")
	case strings.TrimSpace(v.title) == "":
		return fmt.Errorf("video title is required")
	case v.courseCode == "":
		return fmt.Errorf("course code is required")
	case v.uploaderID == "":
		return fmt.Errorf("uploader is required")
	case v.url == "" || v.storageKey == "":
		return fmt.Errorf("video location is required")
	case v.duration != nil && *v.duration < 0:
		return fmt.Errorf("duration must not be negative")
	}
	return nil
}

// VideoView is the serializable form of a [Video] used by exports and JSON output.
type VideoView struct {
	ID          string    `json:"video_id" yaml:"video_id"`
	Title       string    `json:"title" yaml:"title"`
	Description *string   `json:"description" yaml:"description,omitempty"`
	CourseCode  string    `json:"course_code" yaml:"course_code"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Duration    *int      `json:"duration" yaml:"duration,omitempty"`
	URL         string    `json:"video_url" yaml:"video_url"`
	UploaderID  string    `json:"uploader_id" yaml:"uploader_id"`
}

// View returns the serializable form of v.
func (v *Video) View() VideoView {
	return VideoView{
		ID:          v.id,
		Title:       v.title,
		Description: v.description,
		CourseCode:  v.courseCode,
		CreatedAt:   v.createdAt,
		Duration:    v.duration,
		URL:         v.url,
		UploaderID:  v.uploaderID,
	}
}
