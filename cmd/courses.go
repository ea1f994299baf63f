package main

import (
	"context"
	"fmt"
	"io"

	"github.com/desertthunder/studyous/internal/catalog"
	"github.com/desertthunder/studyous/internal/shared"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

// CoursesList prints the whole catalog.
func (r *Runner) CoursesList(ctx context.Context, cmd *cli.Command) error {
	courses := r.catalog.Courses()
	if cmd.Bool("json") {
		return r.writeJSON(courses, true)
	}
	return r.writeCourses(courses)
}

// CoursesSearch prints the courses matching a query, in catalog order.
func (r *Runner) CoursesSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	matches := r.catalog.Filter(query)
	if cmd.Bool("json") {
		return r.writeJSON(matches, true)
	}

	if len(matches) == 0 {
		r.writePlain("No courses found\n")
		if course, ok := catalog.Suggest(r.catalog.Courses(), query); ok {
			r.writePlain("Did you mean %s?\n", course.Label())
		}
		return nil
	}
	return r.writeCourses(matches)
}

func (r *Runner) writeCourses(courses []catalog.Course) error {
	data := make([][]string, 0, len(courses))
	for _, c := range courses {
		data = append(data, []string{c.Code, c.Name})
	}

	table := newTable(r.output, "CODE", "NAME")
	table.AppendBulk(data)
	table.Render()
	return nil
}

// newTable returns a borderless, left-aligned table writing to w.
func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	return table
}
