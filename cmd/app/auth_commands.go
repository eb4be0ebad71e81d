package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/catalog/cmd/app/commands"
	"github.com/allisson/catalog/internal/app"
	"github.com/allisson/catalog/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-admin-token",
			Usage: "Generate an admin bearer token and the ADMIN_TOKEN_HASH to configure",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateAdminToken(
					container.AdminTokenService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
