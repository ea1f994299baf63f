// Package catalog holds the static course list and the substring filter used by course search.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/studyous/internal/shared"
)

//go:embed courses.toml
var builtinCourses []byte

// Course is a single catalog entry.
type Course struct {
	Code string `toml:"code" json:"code"`
	Name string `toml:"name" json:"name"`
}

// Label is the finalized display string for a picked course.
func (c Course) Label() string {
	return c.Code + " - " + c.Name
}

// Catalog is an ordered, read-only list of courses.
//
// The zero value is an empty catalog. Nothing hands out the backing slice, so
// a Catalog never changes after it is built.
type Catalog struct {
	courses []Course
}

type catalogFile struct {
	Courses []Course `toml:"course"`
}

// New builds a catalog from courses, copying the slice.
func New(courses []Course) Catalog {
	return Catalog{courses: append([]Course(nil), courses...)}
}

// Default returns the built-in catalog.
func Default() Catalog {
	c, err := parse(builtinCourses)
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded course catalog: %v", err))
	}
	return c
}

// Load returns the catalog at path, or the built-in catalog when path is empty.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (Catalog, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Courses))
	for i, c := range file.Courses {
		if strings.TrimSpace(c.Code) == "" || strings.TrimSpace(c.Name) == "" {
			return Catalog{}, fmt.Errorf("%w: course %d needs a code and a name", shared.ErrInvalidInput, i)
		}
		key := strings.ToLower(c.Code)
		if seen[key] {
			return Catalog{}, fmt.Errorf("%w: duplicate course code %q", shared.ErrInvalidInput, c.Code)
		}
		seen[key] = true
	}

	return Catalog{courses: file.Courses}, nil
}

// Courses returns a copy of every course in catalog order.
func (c Catalog) Courses() []Course {
	return append([]Course(nil), c.courses...)
}

// Len returns the number of courses.
func (c Catalog) Len() int { return len(c.courses) }

// Find looks up a course by code, ignoring case.
func (c Catalog) Find(code string) (Course, bool) {
	for _, course := range c.courses {
		if strings.EqualFold(course.Code, code) {
			return course, true
		}
	}
	return Course{}, false
}

// Filter applies [Filter] to the catalog.
func (c Catalog) Filter(query string) []Course {
	return Filter(c.courses, query)
}

// RouteKey is the navigation route for a course's video page.
func RouteKey(code string) string {
	return "/videos/" + code
}
