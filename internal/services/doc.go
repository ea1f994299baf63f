// Package services implements the application operations behind the CLI, the TUI and the media server.
//
// # Accounts
//
// [AuthService] signs users up, logs them in and out, and resolves the current user from a session
// file on disk. Passwords are stored as bcrypt hashes; sessions expire after a configured TTL.
//
// # Videos
//
// [VideoService] lists a course's videos (newest first, with an optional title/description search),
// fetches single videos, and uploads new ones. Uploaded files are copied into a [Store] under
// "<uploader>/<uuid>.<ext>" and published at the media server's "/media/" prefix.
//
// # Profiles
//
// [ProfileService] exposes public profile fields and lets a user edit their own profile.
//
// # Error Handling
//
// Services use sentinel errors from the shared package:
//   - [shared.ErrNotAuthenticated] : no valid session
//   - [shared.ErrForbidden] : editing another user's profile
//   - [shared.ErrInvalidInput] : missing or malformed fields
//   - [shared.ErrInvalidFile] : missing file or unsupported extension
//   - [shared.ErrCourseNotFound] : course code not in the catalog
package services
