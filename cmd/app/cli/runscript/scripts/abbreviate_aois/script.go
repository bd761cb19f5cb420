package script_abbreviate_aois

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func run(ctx *cli.Context, deps CommandDeps, inputs []string, output string, legendPath string) error {
	log.Info().Strs("inputs", inputs).Str("output", output).Msg("running script")

	rows, err := deps.HitRepo.LoadFiles(ctx.Context, inputs)
	if err != nil {
		return errors.Wrap(err, "failed to load inputs")
	}

	abbreviated, legend := deps.CleanerService.Abbreviate(rows)

	out, err := os.Create(output)
	if err != nil {
		return errors.Wrap(err, "failed to create output")
	}
	defer out.Close()
	if err := deps.CleanerService.WriteHits(out, abbreviated); err != nil {
		return errors.Wrap(err, "failed to write abbreviated data")
	}

	legendFile, err := os.Create(legendPath)
	if err != nil {
		return errors.Wrap(err, "failed to create legend")
	}
	defer legendFile.Close()
	if err := deps.CleanerService.WriteLegend(legendFile, legend); err != nil {
		return errors.Wrap(err, "failed to write legend")
	}

	log.Info().Int("aois", len(legend)).Str("legend", legendPath).Msg("script finished")

	return nil
}
