package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/vistaran/helpdesk/internal/logging"
	"github.com/vistaran/helpdesk/internal/server"
)

func main() {
	addr := flag.String("a", ":8080", "address to listen on")
	flag.Parse()

	ctx := context.Background()
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	store := server.NewSeededStore()
	router := server.NewRouter(store, log)

	log.Info(ctx, "development remote store listening", "addr", *addr)
	if err := router.Run(*addr); err != nil {
		log.Error(ctx, "server stopped", "err", err)
		os.Exit(1)
	}
}
