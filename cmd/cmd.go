// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Create config.toml if missing, initialize the database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage your account and session",
		Commands: []*cli.Command{
			{
				Name:  "signup",
				Usage: "Create an account",
				Flags: []cli.Flag{
					emailFlag(),
					passwordFlag(),
					&cli.StringFlag{Name: "confirm", Usage: "Repeat the password (defaults to --password)"},
					&cli.StringFlag{Name: "first-name", Usage: "First name", Required: true},
					&cli.StringFlag{Name: "last-name", Usage: "Last name", Required: true},
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Public username", Required: true},
				},
				Action: r.AuthSignup,
			},
			{
				Name:   "login",
				Usage:  "Log in and save a session",
				Flags:  []cli.Flag{emailFlag(), passwordFlag()},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Remove the saved session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the logged-in user",
				Action: r.AuthStatus,
			},
		},
	}
}

// coursesCommand handles catalog lookups
func coursesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "courses",
		Aliases: []string{"c"},
		Usage:   "Browse the course catalog",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every course",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.CoursesList,
			},
			{
				Name:  "search",
				Usage: "Find courses whose code or name contains the query",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.CoursesSearch,
			},
		},
	}
}

// videosCommand handles video listing, playback and uploads
func videosCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "videos",
		Aliases: []string{"v"},
		Usage:   "Course video operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List a course's videos, newest first",
				Flags: []cli.Flag{
					courseFlag(),
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Match title or description"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "json, yaml, csv, markdown or txt", Value: "txt"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write to a file instead of stdout"},
					&cli.BoolFlag{Name: "save", Usage: "Write to <course>_videos.<ext>"},
				},
				Action: r.VideosList,
			},
			{
				Name:  "show",
				Usage: "Show a video's details",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					jsonFlag(),
				},
				Action: r.VideosShow,
			},
			{
				Name:  "open",
				Usage: "Open a video in the browser",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.VideosOpen,
			},
			{
				Name:  "upload",
				Usage: "Upload a video file to a course",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "file"},
				},
				Flags: []cli.Flag{
					courseFlag(),
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Video title", Required: true},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Optional description"},
					&cli.IntFlag{Name: "duration", Usage: "Length in seconds"},
				},
				Action: r.VideosUpload,
			},
			{
				Name:  "import",
				Usage: "Upload every video file in a directory",
				Flags: []cli.Flag{
					courseFlag(),
					&cli.StringFlag{Name: "dir", Usage: "Directory to scan", Required: true},
					&cli.BoolFlag{Name: "recursive", Aliases: []string{"r"}, Usage: "Include subdirectories"},
					&cli.IntFlag{Name: "workers", Usage: "Concurrent uploads", Value: 3},
					&cli.FloatFlag{Name: "rate", Usage: "Uploads started per second", Value: 5},
					&cli.StringFlag{Name: "manifest", Usage: "Write a JSON summary to this path"},
				},
				Action: r.VideosImport,
			},
		},
	}
}

// profileCommand handles profile operations
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "View and edit profiles",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show a profile and its uploads (defaults to your own)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					jsonFlag(),
				},
				Action: r.ProfileShow,
			},
			{
				Name:  "update",
				Usage: "Change your name or username",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "first-name", Usage: "New first name"},
					&cli.StringFlag{Name: "last-name", Usage: "New last name"},
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "New username"},
				},
				Action: r.ProfileUpdate,
			},
		},
	}
}

// serveCommand runs the media server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Serve uploaded videos over HTTP",
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive course browser",
		Action:  r.TUI,
	}
}

func emailFlag() cli.Flag {
	return &cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true}
}

// passwordFlag can also be read from STUDYOUS_PASSWORD to keep it out of shell history.
func passwordFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "password",
		Aliases:  []string{"p"},
		Usage:    "Account password",
		Sources:  cli.EnvVars("STUDYOUS_PASSWORD"),
		Required: true,
	}
}

func courseFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "course",
		Aliases:  []string{"c"},
		Usage:    "Course code, e.g. \"CSCE 121\"",
		Required: true,
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}
}
