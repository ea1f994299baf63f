package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/studyous/internal/services"
	"github.com/desertthunder/studyous/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthSignup creates an account. It does not log in.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	confirm := cmd.String("confirm")
	if confirm == "" {
		confirm = cmd.String("password")
	}

	user, err := r.auth.Signup(services.SignupRequest{
		Email:           cmd.String("email"),
		Password:        cmd.String("password"),
		ConfirmPassword: confirm,
		FirstName:       cmd.String("first-name"),
		LastName:        cmd.String("last-name"),
		Username:        cmd.String("username"),
	})
	if err != nil {
		return err
	}

	r.writePlain("✓ Account created for @%s\n", user.Username())
	return r.writePlain("Run 'studyous auth login --email %s' to start a session\n", user.Email())
}

// AuthLogin checks credentials and saves a session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	user, err := r.auth.Login(cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}
	return r.writePlain("✓ Logged in as @%s\n", user.Username())
}

// AuthLogout removes the saved session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	if err := r.auth.Logout(); err != nil {
		return err
	}
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus prints the logged-in user, if any.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	user, err := r.auth.CurrentUser()
	switch {
	case errors.Is(err, shared.ErrSessionExpired):
		return r.writePlain("✗ Session expired, log in again\n")
	case errors.Is(err, shared.ErrNotAuthenticated):
		return r.writePlain("✗ Not logged in\n")
	case err != nil:
		return fmt.Errorf("failed to read session: %w", err)
	}

	session, err := r.auth.Session()
	if err != nil {
		return err
	}

	r.writePlain("✓ Logged in as @%s (%s)\n", user.Username(), user.FullName())
	r.writePlain("User ID: %s\n", user.ID())
	return r.writePlain("Session expires: %s\n", session.ExpiresAt.Local().Format("2006-01-02 15:04"))
}
