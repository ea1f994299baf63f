package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Filter returns the courses whose code or name contains query, ignoring case.
//
// The query is not trimmed, so "cs " only matches where a space follows "cs".
// An empty query matches every course. Order follows courses and the input
// slice is never modified; the result is always a fresh slice.
func Filter(courses []Course, query string) []Course {
	q := strings.ToLower(query)

	out := make([]Course, 0, len(courses))
	for _, c := range courses {
		if strings.Contains(strings.ToLower(c.Code), q) || strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}

// labels adapts courses to [fuzzy.Source].
type labels []Course

func (l labels) Len() int            { return len(l) }
func (l labels) String(i int) string { return l[i].Code + " " + l[i].Name }

// Suggest returns the closest fuzzy match for query, for "did you mean" hints when [Filter] finds nothing.
func Suggest(courses []Course, query string) (Course, bool) {
	if strings.TrimSpace(query) == "" {
		return Course{}, false
	}

	matches := fuzzy.FindFrom(query, labels(courses))
	if len(matches) == 0 {
		return Course{}, false
	}
	return courses[matches[0].Index], true
}
