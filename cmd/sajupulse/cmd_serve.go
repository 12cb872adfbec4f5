package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"SajuPulse/internal/di"
	"SajuPulse/pkg/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the Kafka scan consumer",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = "config/config.yaml"
	}
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return err
	}

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx)
}
