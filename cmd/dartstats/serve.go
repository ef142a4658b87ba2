package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/dart-stats/app"
	"github.com/Black-And-White-Club/dart-stats/config"
	"github.com/Black-And-White-Club/dart-stats/internal/observability"
	"github.com/urfave/cli/v2"
)

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the HTTP API and event handlers",
		Action: func(c *cli.Context) error {
			cfg, obs, err := load(c)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.NewApp(ctx, cfg, obs)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			return application.Run(ctx)
		},
	}
}

// load reads the configuration named by --config and builds the logger,
// tracer and metrics registry from it.
func load(c *cli.Context) (*config.Config, *observability.Observability, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	obs, err := observability.New(observability.Config{
		Environment: cfg.Observability.Environment,
		LogFormat:   cfg.Observability.LogFormat,
		LogLevel:    cfg.Observability.LogLevel,
	}, os.Stderr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	return cfg, obs, nil
}
