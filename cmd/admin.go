package main

import (
	"context"
	"fmt"

	"github.com/lukee-d/friendify/internal/game"
	"github.com/lukee-d/friendify/internal/repositories"
	"github.com/urfave/cli/v3"
)

// AdminPurge deletes every saved snapshot: all users and their tracks.
func (r *Runner) AdminPurge(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	snapshots := repositories.NewSnapshotRepository(db)
	if err := snapshots.PurgeAll(); err != nil {
		return fmt.Errorf("failed to purge snapshots: %w", err)
	}

	r.logger.Info("purged all snapshots")
	return r.writePlain("✓ All saved snapshots deleted\n")
}

// AdminPrune deletes lobbies older than the configured TTL, members included.
func (r *Runner) AdminPrune(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	snapshots := repositories.NewSnapshotRepository(db)
	lobbies := repositories.NewLobbyRepository(db)
	registry := game.NewRegistry(lobbies, snapshots, config.Game, r.logger)

	removed, err := registry.Prune()
	if err != nil {
		return fmt.Errorf("failed to prune lobbies: %w", err)
	}

	return r.writePlain("✓ Pruned %d stale lobbies\n", removed)
}
