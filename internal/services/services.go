// package services defines the request types and collaborators shared by the account, video and profile services
package services

import (
	"io"
	"time"
)

// Store persists uploaded video files under string keys.
type Store interface {
	// Put writes r under key and returns the number of bytes written.
	Put(key string, r io.Reader) (int64, error)

	// Open returns a reader for the object at key.
	Open(key string) (io.ReadCloser, error)

	// Delete removes the object at key. Deleting a missing object is not an error.
	Delete(key string) error
}

// Session is the persisted login state.
type Session struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SignupRequest carries the create-account form.
type SignupRequest struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Username        string
}

// UploadRequest carries the upload form. Description and Duration are optional.
type UploadRequest struct {
	CourseCode  string
	Title       string
	Description string
	Duration    *int // Duration in seconds
	FilePath    string
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Username  string
}

// AllowedExtensions lists the accepted video file extensions.
var AllowedExtensions = []string{"mp4", "mov", "avi", "webm", "mkv"}
