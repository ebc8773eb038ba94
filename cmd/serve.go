package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/lukee-d/friendify/internal/game"
	"github.com/lukee-d/friendify/internal/repositories"
	"github.com/lukee-d/friendify/internal/server"
	"github.com/lukee-d/friendify/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve wires the full application and runs the HTTP server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	if port := cmd.Int("port"); port > 0 {
		config.Server.Port = int(port)
	}

	service, err := r.ensureService(config)
	if err != nil {
		return err
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	snapshots := repositories.NewSnapshotRepository(db)
	lobbies := repositories.NewLobbyRepository(db)
	registry := game.NewRegistry(lobbies, snapshots, config.Game, r.logger)

	srv, err := server.New(config, service, registry, snapshots, r.logger)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}
