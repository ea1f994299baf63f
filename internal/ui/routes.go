package ui

import (
	"strings"

	"github.com/desertthunder/studyous/internal/catalog"
)

// Page identifies a screen of the TUI.
type Page int

const (
	CoursesPage Page = iota
	VideosPage
	WatchPage
	ProfilePage
	UploadPage
)

func (p Page) String() string {
	switch p {
	case CoursesPage:
		return "courses"
	case VideosPage:
		return "videos"
	case WatchPage:
		return "watch"
	case ProfilePage:
		return "profile"
	case UploadPage:
		return "upload"
	default:
		return ""
	}
}

// Route is a parsed navigation target.
type Route struct {
	Page Page
	Arg  string // course code, video ID or user ID
}

// ParseRoute maps a route string to a [Route]. Unknown routes fall back to the courses page.
//
//	/                -> courses
//	/videos/<code>   -> videos of a course
//	/watch/<id>      -> a single video
//	/profile/<id>    -> a user profile
//	/upload          -> the upload form
//	/upload/<code>   -> the upload form with the course preselected
func ParseRoute(route string) Route {
	head, arg, _ := strings.Cut(strings.TrimPrefix(route, "/"), "/")
	switch {
	case head == "videos" && arg != "":
		return Route{Page: VideosPage, Arg: arg}
	case head == "watch" && arg != "":
		return Route{Page: WatchPage, Arg: arg}
	case head == "profile" && arg != "":
		return Route{Page: ProfilePage, Arg: arg}
	case head == "upload":
		return Route{Page: UploadPage, Arg: arg}
	default:
		return Route{Page: CoursesPage}
	}
}

// String renders r back into a route string.
func (r Route) String() string {
	switch r.Page {
	case VideosPage:
		return catalog.RouteKey(r.Arg)
	case WatchPage:
		return "/watch/" + r.Arg
	case ProfilePage:
		return "/profile/" + r.Arg
	case UploadPage:
		if r.Arg != "" {
			return "/upload/" + r.Arg
		}
		return "/upload"
	default:
		return "/"
	}
}

// ShowsSearch reports whether the course search bar is shown on the page.
func (r Route) ShowsSearch() bool {
	return r.Page != ProfilePage
}
