package main

// PressQuote serves vinyl pressing quotes compared across plants.

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pressquote/pressquote/app"
	"github.com/pressquote/pressquote/server"
)

func main() {
	os.Exit(run())
}

func run() int {
	bootLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	application, err := app.New()
	if err != nil {
		bootLogger.Error("failed to initialize app", "error", err)
		return 1
	}
	defer application.Close()

	srv, err := server.New(application.Config, application.Logger, application.Handlers)
	if err != nil {
		application.Logger.Error("failed to initialize server", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application.RunBackground(ctx)

	if err := srv.Run(ctx); err != nil {
		application.Logger.Error("server exited", "error", err)
		return 1
	}
	return 0
}
