package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/vistaran/helpdesk/internal/client/cli"
	"github.com/vistaran/helpdesk/internal/client/config"
	"github.com/vistaran/helpdesk/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		os.Exit(1)
	}

	app.Run(ctx)
}
