// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// serveCommand runs the HTTP server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the Friendify web server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "port",
				Usage: "Override the configured listen port",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// spotifyCommand handles debug calls against the Spotify API using the tokens
// cached in the config file.
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify API debug operations",
		Commands: []*cli.Command{
			{
				Name:  "profile",
				Usage: "Show the authenticated user's profile",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SpotifyProfile,
			},
			{
				Name:  "top",
				Usage: "Show the authenticated user's top tracks",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of tracks to return",
						Value: 5,
					},
					&cli.StringFlag{
						Name:  "time-range",
						Usage: "Ranking window (short_term, medium_term, long_term)",
						Value: "short_term",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SpotifyTop,
			},
		},
	}
}

// adminCommand handles maintenance of the stored snapshots and lobbies.
func adminCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Administrative maintenance commands",
		Commands: []*cli.Command{
			{
				Name:   "purge",
				Usage:  "Delete every saved user snapshot",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AdminPurge,
			},
			{
				Name:   "prune",
				Usage:  "Delete lobbies older than the configured TTL",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AdminPrune,
			},
		},
	}
}
