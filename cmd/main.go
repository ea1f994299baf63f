package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/studyous/internal/catalog"
	"github.com/desertthunder/studyous/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := os.Getenv("STUDYOUS_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	config, err := shared.ResolveConfig(configPath)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		config = shared.DefaultConfig()
	}

	opts := RunnerOpts{Config: config, ConfigPath: configPath, Logger: logger}
	if config.Catalog.Path != "" {
		c, err := catalog.Load(config.Catalog.Path)
		if err != nil {
			logger.Fatalf("failed to load course catalog: %v", err)
		}
		opts.Catalog = &c
	}

	runner := NewRunner(opts)
	defer runner.Close()

	app := &cli.Command{
		Name:     "studyous",
		Usage:    "Find, watch and share short course videos",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			return
		}
		runner.Close()
		logger.Fatalf("application error: %v", err)
	}
}
