package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/studyous/internal/models"
	"github.com/desertthunder/studyous/internal/services"
	"github.com/desertthunder/studyous/internal/shared"
	"github.com/urfave/cli/v3"
)

type profileOutput struct {
	models.Profile
	Uploads []models.VideoView `json:"uploads"`
}

// ProfileShow prints a profile and its uploads. Without an id it shows the logged-in user.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		session, err := r.auth.Session()
		if err != nil {
			return fmt.Errorf("pass a user id or log in: %w", err)
		}
		id = session.UserID
	}

	profile, err := r.profiles.Get(id)
	if err != nil {
		return err
	}
	uploads, err := r.videos.ListByUploader(id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		out := profileOutput{Profile: profile, Uploads: make([]models.VideoView, len(uploads))}
		for i, v := range uploads {
			out.Uploads[i] = v.View()
		}
		return r.writeJSON(out, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s %s (@%s)", profile.FirstName, profile.LastName, profile.Username))
	r.writePlain("Uploads: %d\n", len(uploads))
	if len(uploads) == 0 {
		return nil
	}

	r.writePlain("\n")
	table := newTable(r.output, "COURSE", "UPLOADED", "ID", "TITLE")
	for _, v := range uploads {
		table.Append([]string{v.CourseCode(), shared.FormatDate(v.CreatedAt()), v.ID(), v.Title()})
	}
	table.Render()
	return nil
}

// ProfileUpdate changes the logged-in user's profile. Omitted flags keep their current value.
func (r *Runner) ProfileUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	user, err := r.auth.CurrentUser()
	if err != nil {
		return err
	}

	update := services.ProfileUpdate{
		FirstName: user.FirstName(),
		LastName:  user.LastName(),
		Username:  user.Username(),
	}
	if cmd.IsSet("first-name") {
		update.FirstName = cmd.String("first-name")
	}
	if cmd.IsSet("last-name") {
		update.LastName = cmd.String("last-name")
	}
	if cmd.IsSet("username") {
		update.Username = cmd.String("username")
	}

	profile, err := r.profiles.Update(user.ID(), update)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Profile updated: %s %s (@%s)\n", profile.FirstName, profile.LastName, profile.Username)
}
