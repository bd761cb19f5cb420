package analyze

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/gazeseq/cmd/app/cli"
	"exusiai.dev/gazeseq/internal/model"
	"exusiai.dev/gazeseq/internal/repo"
	"exusiai.dev/gazeseq/internal/service"
)

type CommandDeps struct {
	fx.In

	AnalysisService *service.Analysis
	DatasetRepo     *repo.Dataset
}

func Command() *cli.Command {
	depsFn := cliapp.DepsFn[CommandDeps]()
	return &cli.Command{
		Name:  "analyze",
		Usage: "analyze one dataset",
		Description: "Analyze the given input tables, or the named dataset of the profile when no input is given. " +
			"Mining and counting parameters come from the GAZESEQ_* environment.",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "hit table(s), concatenated in the given order",
			},
			&cli.StringFlag{
				Name:    "dataset",
				Aliases: []string{"d"},
				Usage:   "dataset name, used for output naming or for lookup in the profile",
				Value:   "analysis",
			},
			&cli.StringFlag{
				Name:  "chart",
				Usage: "keep only rows of this chart",
			},
			&cli.IntSliceFlag{
				Name:  "participant",
				Usage: "expected participant; missing ones get an empty trace",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "report path",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "report format: csv or json",
				Value: "csv",
			},
		},
		Action: func(ctx *cli.Context) error {
			deps, stop := depsFn()
			defer stop()

			dataset, err := resolveDataset(ctx, deps)
			if err != nil {
				return err
			}

			result, err := deps.AnalysisService.Execute(ctx.Context, dataset)
			if err != nil {
				return errors.Wrap(err, "analysis failed")
			}

			log.Info().
				Str("dataset", dataset.Name).
				Str("path", result.Path).
				Str("archiveKey", result.ArchiveKey).
				Int("patterns", result.Report.Summary.NumberOfSequences).
				Msg("analysis finished")
			return nil
		},
	}
}

func resolveDataset(ctx *cli.Context, deps CommandDeps) (*model.Dataset, error) {
	if len(ctx.StringSlice("input")) == 0 {
		return deps.DatasetRepo.GetDatasetByName(ctx.Context, ctx.String("dataset"))
	}
	return &model.Dataset{
		Name:         ctx.String("dataset"),
		Inputs:       ctx.StringSlice("input"),
		Chart:        ctx.String("chart"),
		Participants: ctx.IntSlice("participant"),
		Output:       ctx.String("output"),
		Format:       ctx.String("format"),
	}, nil
}
