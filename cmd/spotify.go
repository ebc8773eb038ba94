package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// SpotifyProfile prints the profile of the user whose tokens are cached in the
// config file.
func (r *Runner) SpotifyProfile(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	service, err := r.ensureService(config)
	if err != nil {
		return err
	}

	token, err := r.configToken(config)
	if err != nil {
		return err
	}

	profile, err := service.UserProfile(ctx, token)
	if err != nil {
		return err
	}

	return r.writeJSON(profile, cmd.Bool("pretty"))
}

// SpotifyTop prints the cached user's top tracks.
func (r *Runner) SpotifyTop(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	service, err := r.ensureService(config)
	if err != nil {
		return err
	}

	token, err := r.configToken(config)
	if err != nil {
		return err
	}

	tracks, err := service.TopTracks(ctx, token, int(cmd.Int("limit")), cmd.String("time-range"))
	if err != nil {
		return err
	}

	return r.writeJSON(tracks, cmd.Bool("pretty"))
}
