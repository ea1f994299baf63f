package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/studyous/internal/formatter"
	"github.com/desertthunder/studyous/internal/models"
	"github.com/desertthunder/studyous/internal/services"
	"github.com/desertthunder/studyous/internal/shared"
	"github.com/desertthunder/studyous/internal/tasks"
	"github.com/urfave/cli/v3"
)

// VideosList prints or exports a course's videos.
func (r *Runner) VideosList(ctx context.Context, cmd *cli.Command) error {
	code := cmd.String("course")
	search := cmd.String("search")
	format := cmd.String("format")
	output := cmd.String("output")

	course, ok := r.catalog.Find(code)
	if !ok {
		return fmt.Errorf("%w: %q", shared.ErrCourseNotFound, code)
	}
	if err := r.init(); err != nil {
		return err
	}

	r.logger.Debug("listing videos", "course", course.Code, "search", search)
	videos, err := r.videos.List(course.Code, search)
	if err != nil {
		return err
	}

	listing := formatter.NewVideoListing(course.Code, course.Name, search, videos)
	if output != "" || cmd.Bool("save") {
		path, err := formatter.WriteExport(listing, format, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported %d videos to %s\n", len(videos), path)
	}

	data, err := formatter.Render(listing, format)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// VideosShow prints one video.
func (r *Runner) VideosShow(ctx context.Context, cmd *cli.Command) error {
	video, err := r.videoArg(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(video.View(), true)
	}

	r.writePlainHeader(video.Title())
	course := video.CourseCode()
	if c, ok := r.catalog.Find(course); ok {
		course = c.Label()
	}
	r.writePlain("Course:   %s\n", course)
	r.writePlain("Uploaded: %s\n", shared.FormatDate(video.CreatedAt()))
	if d := video.Duration(); d != nil {
		r.writePlain("Duration: %s\n", shared.FormatDuration(*d))
	}
	if p, err := r.profiles.Get(video.UploaderID()); err == nil {
		r.writePlain("Uploader: %s %s (@%s)\n", p.FirstName, p.LastName, p.Username)
	}
	r.writePlain("URL:      %s\n", video.URL())
	if d := video.Description(); d != nil {
		r.writePlainln("%s", *d)
	}
	return nil
}

// VideosOpen opens a video's URL in the default browser.
func (r *Runner) VideosOpen(ctx context.Context, cmd *cli.Command) error {
	video, err := r.videoArg(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("opening video", "id", video.ID(), "url", video.URL())
	if err := r.openURL(video.URL()); err != nil {
		return err
	}
	return r.writePlain("✓ Opened %s\n", video.URL())
}

func (r *Runner) videoArg(cmd *cli.Command) (*models.Video, error) {
	id := cmd.StringArg("id")
	if id == "" {
		return nil, fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}
	if err := r.init(); err != nil {
		return nil, err
	}
	return r.videos.Get(id)
}

// VideosUpload uploads a single file as the logged-in user.
func (r *Runner) VideosUpload(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	req := services.UploadRequest{
		CourseCode:  cmd.String("course"),
		Title:       cmd.String("title"),
		Description: cmd.String("description"),
		FilePath:    cmd.StringArg("file"),
	}
	if cmd.IsSet("duration") {
		d := int(cmd.Int("duration"))
		req.Duration = &d
	}

	course, err := r.videos.ValidateUpload(req)
	if err != nil {
		return err
	}

	r.writePlain("Uploading %s to %s...\n", req.FilePath, course.Label())
	video, err := r.videos.Upload(ctx, req)
	if err != nil {
		return err
	}

	r.writePlain("✓ Uploaded %q\n", video.Title())
	r.writePlain("ID:  %s\n", video.ID())
	return r.writePlain("URL: %s\n", video.URL())
}

// VideosImport uploads a directory of videos with progress output.
func (r *Runner) VideosImport(ctx context.Context, cmd *cli.Command) error {
	code := cmd.String("course")
	course, ok := r.catalog.Find(code)
	if !ok {
		return fmt.Errorf("%w: %q", shared.ErrCourseNotFound, code)
	}
	if err := r.init(); err != nil {
		return err
	}
	if _, err := r.auth.CurrentUser(); err != nil {
		return err
	}

	opts := tasks.ImportOpts{
		CourseCode:   course.Code,
		Dir:          cmd.String("dir"),
		Recursive:    cmd.Bool("recursive"),
		NumWorkers:   int(cmd.Int("workers")),
		RateLimit:    cmd.Float("rate"),
		ManifestPath: cmd.String("manifest"),
	}
	if info, err := os.Stat(opts.Dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", shared.ErrInvalidArgument, opts.Dir)
	}

	r.logger.Info("starting import", "course", course.Code, "dir", opts.Dir)
	r.writePlain("Importing videos into %s\n\n", course.Label())

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ScanFiles:
				r.writePlain("📂 %s\n", update.Message)
			case tasks.UploadFiles:
				r.writePlain("   [%d/%d] %s\n", update.Step, update.Total, update.Message)
			case tasks.WriteManifest:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.Import(ctx, progressCh, opts)
	close(progressCh)
	<-done

	if result == nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Import Complete!")
	r.writePlain("Uploaded: %d/%d\n", result.Uploaded, result.TotalFiles)

	if result.Failed > 0 {
		r.writePlain("\nFailed to upload %d files:\n", result.Failed)
		for _, res := range result.Results {
			if res.Error != nil {
				r.writePlain("  - %s: %v\n", res.Path, res.Error)
			}
		}
	}
	return err
}
