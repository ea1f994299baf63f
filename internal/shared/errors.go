package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrSessionExpired   = fmt.Errorf("session expired")
	ErrForbidden        = fmt.Errorf("not allowed")

	// Account errors
	ErrUsernameTaken = fmt.Errorf("username is already taken")
	ErrEmailTaken    = fmt.Errorf("email is already registered")
	ErrWeakPassword  = fmt.Errorf("password does not meet requirements")

	// Lookup errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrVideoNotFound      = fmt.Errorf("video not found")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrCourseNotFound     = fmt.Errorf("course not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidFile     = fmt.Errorf("invalid video file")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
