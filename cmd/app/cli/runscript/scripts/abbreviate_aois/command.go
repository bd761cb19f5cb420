package script_abbreviate_aois

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
		Name:        "abbreviate_aois",
		Description: "replace AOI names with single-character abbreviations and write the legend",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "hit table(s) with full AOI names",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "abbreviated table path",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "legend",
				Usage: "legend table path",
				Value: "aoi_legend.csv",
			},
		},
		Action: func(ctx *cli.Context) error {
			deps, stop := depsFn()
			defer stop()
			return run(ctx, deps, ctx.StringSlice("input"), ctx.String("output"), ctx.String("legend"))
		},
	}
}
