package script_clean_sequences

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"exusiai.dev/gazeseq/internal/repo"
	"exusiai.dev/gazeseq/internal/service"
)

type CommandDeps struct {
	fx.In

	HitRepo        *repo.Hit
	CleanerService *service.Cleaner
}

func Command(depsFn func() (CommandDeps, func())) *cli.Command {
	return &cli.Command{
		Name:        "clean_sequences",
		Description: "drop ignored AOIs, order rows by participant and chart, and collapse consecutive repeated AOIs",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "hit table(s) to clean, concatenated in the given order",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "cleaned table path",
				Required: true,
			},
		},
		Action: func(ctx *cli.Context) error {
			deps, stop := depsFn()
			defer stop()
			return run(ctx, deps, ctx.StringSlice("input"), ctx.String("output"))
		},
	}
}
