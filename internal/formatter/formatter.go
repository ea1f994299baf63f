// package formatter provides functions to export video listings to various formats (JSON, YAML, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/studyous/internal/models"
	"github.com/desertthunder/studyous/internal/shared"
	"gopkg.in/yaml.v3"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "yaml", "csv", "markdown", "txt"}

// VideoListing is a course's video list as shown on the course page.
type VideoListing struct {
	CourseCode string             `json:"course_code" yaml:"course_code"`
	CourseName string             `json:"course_name" yaml:"course_name"`
	Search     string             `json:"search,omitempty" yaml:"search,omitempty"`
	Videos     []models.VideoView `json:"videos" yaml:"videos"`
}

// NewVideoListing builds a listing from repository videos.
func NewVideoListing(code, name, search string, videos []*models.Video) *VideoListing {
	views := make([]models.VideoView, 0, len(videos))
	for _, v := range videos {
		views = append(views, v.View())
	}
	return &VideoListing{CourseCode: code, CourseName: name, Search: search, Videos: views}
}

func (l *VideoListing) title() string {
	if l.CourseName == "" {
		return l.CourseCode
	}
	return l.CourseCode + " - " + l.CourseName
}

func durationString(d *int) string {
	if d == nil {
		return ""
	}
	return shared.FormatDuration(*d)
}

func descriptionString(d *string) string {
	if d == nil {
		return ""
	}
	return *d
}

// ExportToJSON renders the listing as indented JSON
func ExportToJSON(listing *VideoListing) ([]byte, error) {
	return shared.MarshalJSON(listing, true)
}

// ExportToYAML renders the listing as a YAML document
func ExportToYAML(listing *VideoListing) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(listing); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportToCSV converts a listing to CSV with columns: ID, Title, Course, Duration, Created, URL, Description
func ExportToCSV(listing *VideoListing) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Course", "Duration", "Created", "URL", "Description"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, v := range listing.Videos {
		seconds := ""
		if v.Duration != nil {
			seconds = strconv.Itoa(*v.Duration)
		}
		record := []string{
			v.ID,
			v.Title,
			v.CourseCode,
			seconds,
			shared.FormatDate(v.CreatedAt),
			v.URL,
			descriptionString(v.Description),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a listing to Markdown with one numbered entry per video
func ExportToMarkdown(listing *VideoListing) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", listing.title())
	if listing.Search != "" {
		fmt.Fprintf(&buf, "**Search**: %s\n", listing.Search)
	}
	fmt.Fprintf(&buf, "**Videos**: %d\n\n", len(listing.Videos))

	buf.WriteString("## Videos\n\n")
	if len(listing.Videos) == 0 {
		buf.WriteString("_No videos yet._\n")
	}
	for i, v := range listing.Videos {
		fmt.Fprintf(&buf, "%d. [%s](%s)", i+1, v.Title, v.URL)
		if d := durationString(v.Duration); d != "" {
			fmt.Fprintf(&buf, " [%s]", d)
		}
		fmt.Fprintf(&buf, " (%s)\n", shared.FormatDate(v.CreatedAt))
		if desc := descriptionString(v.Description); desc != "" {
			fmt.Fprintf(&buf, "   %s\n", desc)
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a listing to plain text
func ExportToText(listing *VideoListing) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Course: %s\n", listing.title())
	if listing.Search != "" {
		fmt.Fprintf(&buf, "Search: %s\n", listing.Search)
	}
	fmt.Fprintf(&buf, "Videos: %d\n\n", len(listing.Videos))

	for i, v := range listing.Videos {
		line := fmt.Sprintf("%d. %s", i+1, v.Title)
		if d := durationString(v.Duration); d != "" {
			line += " (" + d + ")"
		}
		fmt.Fprintf(&buf, "%s  %s  %s\n", line, shared.FormatDate(v.CreatedAt), v.ID)
	}

	return buf.Bytes(), nil
}

// Render dispatches to the exporter for format.
func Render(listing *VideoListing, format string) ([]byte, error) {
	switch format {
	case "json":
		return ExportToJSON(listing)
	case "yaml", "yml":
		return ExportToYAML(listing)
	case "csv":
		return ExportToCSV(listing)
	case "markdown", "md":
		return ExportToMarkdown(listing)
	case "txt", "text", "":
		return ExportToText(listing)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// Extension returns the file extension used for format.
func Extension(format string) string {
	switch format {
	case "markdown", "md":
		return "md"
	case "yaml", "yml":
		return "yaml"
	case "json", "csv":
		return format
	default:
		return "txt"
	}
}

// WriteExport renders listing in format and writes it to path.
//
// Defaults to {course_code}_videos.{ext} in the current directory.
func WriteExport(listing *VideoListing, format, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s_videos.%s", shared.Slug(listing.CourseCode), Extension(format))
	}

	data, err := Render(listing, format)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// WriteManifest writes v as indented JSON to path.
func WriteManifest(v any, path string) error {
	data, err := shared.MarshalJSON(v, true)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
