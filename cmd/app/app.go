package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"exusiai.dev/gazeseq/cmd/app/analyze"
	"exusiai.dev/gazeseq/cmd/app/batch"
	"exusiai.dev/gazeseq/cmd/app/cli/runscript"
	"exusiai.dev/gazeseq/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "gazeseq",
		Usage:       "frequent AOI sequence analysis for eye-tracking traces",
		Description: "Discovers frequent AOI sub-sequences in per-participant eye-tracking traces and counts how often, and in whom, each one recurs under a bounded-gap rule. Configured through GAZESEQ_* environment variables.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			analyze.Command(),
			batch.Command(),
			runscript.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
