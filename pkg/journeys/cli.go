package journeys

import (
	"time"

	"github.com/railwatch/railwatch/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "journeys",
		Usage: "Commuter journey publishing",
		Subcommands: []*cli.Command{
			{
				Name:  "update",
				Usage: "fetch, reconcile and publish the journey document",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "override the output file path",
					},
					&cli.BoolFlag{
						Name:  "pretty-dump",
						Usage: "print the assembled document before writing it",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						log.Fatal().Err(err).Msg("Invalid configuration")
					}

					if c.String("output") != "" {
						cfg.OutputPath = c.String("output")
					}

					return Run(cfg, time.Now(), c.Bool("pretty-dump"))
				},
			},
		},
	}
}
