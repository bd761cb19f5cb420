package script_clean_sequences

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func run(ctx *cli.Context, deps CommandDeps, inputs []string, output string) error {
	log.Info().Strs("inputs", inputs).Str("output", output).Msg("running script")

	rows, err := deps.HitRepo.LoadFiles(ctx.Context, inputs)
	if err != nil {
		return errors.Wrap(err, "failed to load inputs")
	}

	cleaned := deps.CleanerService.CleanSequences(rows)

	f, err := os.Create(output)
	if err != nil {
		return errors.Wrap(err, "failed to create output")
	}
	defer f.Close()

	if err := deps.CleanerService.WriteHits(f, cleaned); err != nil {
		return errors.Wrap(err, "failed to write cleaned sequences")
	}

	log.Info().Int("rows", len(cleaned)).Msg("script finished")

	return nil
}
