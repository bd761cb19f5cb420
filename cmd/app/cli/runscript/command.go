package runscript

import (
	"github.com/urfave/cli/v2"

	cliapp "exusiai.dev/gazeseq/cmd/app/cli"
	script_abbreviate_aois "exusiai.dev/gazeseq/cmd/app/cli/runscript/scripts/abbreviate_aois"
	script_clean_sequences "exusiai.dev/gazeseq/cmd/app/cli/runscript/scripts/clean_sequences"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:        "run-script",
		Description: "run data preparation go scripts",
		Subcommands: []*cli.Command{
			script_clean_sequences.Command(cliapp.DepsFn[script_clean_sequences.CommandDeps]()),
			script_abbreviate_aois.Command(cliapp.DepsFn[script_abbreviate_aois.CommandDeps]()),
		},
	}
}
