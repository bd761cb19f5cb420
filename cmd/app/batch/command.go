package batch

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/gazeseq/cmd/app/cli"
	"exusiai.dev/gazeseq/internal/workers/calcwkr"
)

type CommandDeps struct {
	fx.In

	Worker *calcwkr.Worker
}

func Command() *cli.Command {
	depsFn := cliapp.DepsFn[CommandDeps]()
	return &cli.Command{
		Name:        "batch",
		Usage:       "analyze every dataset of the profile",
		Description: "Run the analysis for each dataset listed in the profile at GAZESEQ_PROFILE_PATH, one after another.",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "dataset",
				Aliases: []string{"d"},
				Usage:   "limit the batch to these datasets",
			},
		},
		Action: func(ctx *cli.Context) error {
			deps, stop := depsFn()
			defer stop()

			results, err := deps.Worker.Run(ctx.Context, ctx.StringSlice("dataset"))
			for _, r := range results {
				evt := log.Info().
					Str("dataset", r.Dataset).
					Dur("duration", r.Duration)
				if r.Result != nil {
					evt = evt.Str("path", r.Result.Path)
				}
				evt.Bool("ok", r.Err == nil).Msg("batch dataset")
			}
			return err
		},
	}
}
