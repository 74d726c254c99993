package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/containertoken/cmd/app/commands"
	"github.com/allisson/containertoken/internal/app"
	"github.com/allisson/containertoken/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-master-seed",
			Usage: "Generate a new master key seed for deterministic key derivation",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "kms-key-uri",
					Aliases: []string{"k"},
					Value:   "",
					Usage:   "KMS key URI to wrap the seed (e.g., base64key://, gcpkms://, awskms://)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateMasterSeed(
					ctx,
					commands.DefaultIO().Writer,
					cmd.String("kms-key-uri"),
				)
			},
		},
		{
			Name:  "issue-token",
			Usage: "Sign a container token for a placement (requires a configured seed)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "application-id",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Application ID (UUID)",
				},
				&cli.IntFlag{
					Name:    "sequence",
					Aliases: []string{"s"},
					Value:   1,
					Usage:   "Container sequence number within the application",
				},
				&cli.StringFlag{
					Name:     "node-address",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Target node agent address (host:port)",
				},
				&cli.IntFlag{
					Name:    "memory-mb",
					Aliases: []string{"m"},
					Value:   1024,
					Usage:   "Memory grant in megabytes",
				},
				&cli.IntFlag{
					Name:    "vcores",
					Aliases: []string{"c"},
					Value:   1,
					Usage:   "Virtual core grant",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunIssueToken(
					ctx,
					useCase,
					commands.DefaultIO().Writer,
					cmd.String("application-id"),
					int64(cmd.Int("sequence")),
					cmd.String("node-address"),
					int64(cmd.Int("memory-mb")),
					int64(cmd.Int("vcores")),
				)
			},
		},
		{
			Name:  "verify-token",
			Usage: "Verify a container token credential (requires the issuing seed)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "credential",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Base64-encoded wire token",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerifyToken(
					ctx,
					useCase,
					commands.DefaultIO().Writer,
					cmd.String("credential"),
				)
			},
		},
	}
}
