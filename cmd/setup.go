package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/studyous/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase writes config.toml when missing, creates the database and storage
// directory, and applies pending migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	config := r.bootstrapConfig(cmd.String("config"))

	r.logger.Info("initializing database", "path", config.Database.Path)
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	versions, err := shared.AppliedVersions(db)
	if err != nil {
		return err
	}
	r.logger.Info("migrations applied", "versions", versions)

	if err := os.MkdirAll(config.Storage.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	r.writePlain("✓ Database ready at %s (%d migrations)\n", config.Database.Path, len(versions))
	r.writePlain("✓ Videos will be stored in %s\n", config.Storage.Dir)
	r.writePlainln("Next steps:")
	r.writePlain("1. studyous auth signup --email you@example.com --username you --first-name You --last-name Person\n")
	r.writePlain("2. studyous serve (in another terminal) so uploaded videos can be played\n")
	return nil
}

// bootstrapConfig loads path, creating it from the embedded template first when it does
// not exist. Any failure falls back to the defaults so setup can still proceed.
func (r *Runner) bootstrapConfig(path string) *shared.Config {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := shared.CreateConfigFile(path); err != nil {
			r.logger.Warn("could not write config template, using defaults", "path", path, "error", err)
			return shared.DefaultConfig()
		}
		r.logger.Info("created config from template", "path", path)
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("could not load config, using defaults", "path", path, "error", err)
		return shared.DefaultConfig()
	}
	return config
}
