package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/studyous/internal/catalog"
	"github.com/desertthunder/studyous/internal/repositories"
	"github.com/desertthunder/studyous/internal/services"
	"github.com/desertthunder/studyous/internal/shared"
	"github.com/desertthunder/studyous/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The database and the services built on it are opened on first use, so commands that
// only read the catalog never touch SQLite.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    catalog.Catalog
	logger     *log.Logger
	output     io.Writer
	openURL    func(string) error

	db       *sql.DB
	auth     *services.AuthService
	videos   *services.VideoService
	profiles *services.ProfileService
	engine   *tasks.UploadEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    *catalog.Catalog
	DB         *sql.DB
	Logger     *log.Logger
	Output     io.Writer
	OpenURL    func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}

	c := catalog.Default()
	if opts.Catalog != nil {
		c = *opts.Catalog
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		catalog:    c,
		logger:     opts.Logger,
		output:     opts.Output,
		openURL:    opts.OpenURL,
		db:         opts.DB,
	}
}

// SetLogger replaces the logger used by the runner and any services it builds afterwards.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// init opens the database and wires the services. Calling it again is a no-op.
func (r *Runner) init() error {
	if r.auth != nil {
		return nil
	}

	if r.db == nil {
		db, err := shared.OpenDatabase(r.config.Database)
		if err != nil {
			return fmt.Errorf("failed to open database (run `studyous setup database` first?): %w", err)
		}
		r.db = db
	}

	users := repositories.NewUserRepository(r.db)
	videos := repositories.NewVideoRepository(r.db)

	r.auth = services.NewAuthService(users, r.config.Session, r.logger)
	r.profiles = services.NewProfileService(users, r.auth, r.logger)
	r.videos = services.NewVideoService(
		videos, r.catalog, r.auth, services.NewLocalStore(r.config.Storage), r.config.Server.BaseURL(), r.logger,
	)
	r.engine = tasks.NewUploadEngine(r.videos, r.logger)
	return nil
}

// Close releases the database handle.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, coursesCommand, videosCommand, profileCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
