package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"exusiai.dev/gazeseq/internal/app"
	"exusiai.dev/gazeseq/internal/app/appconfig"
	"exusiai.dev/gazeseq/internal/app/appcontext"
	"exusiai.dev/gazeseq/internal/pkg/observability"
)

// Start builds the application graph and populates module's targets. The returned
// func stops the graph and exports metrics; call it once the command is done.
func Start(module fx.Option) func() {
	var conf *appconfig.Config
	fxApp := app.New(appcontext.Declare(appcontext.EnvCLI), module, fx.Populate(&conf))
	if err := fxApp.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to start app")
	}

	return func() {
		if err := observability.WriteTextfile(conf.MetricsTextfile); err != nil {
			log.Error().Err(err).Msg("failed to export metrics")
		}
		if err := fxApp.Stop(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to stop app")
		}
	}
}

// DepsFn returns a lazy dependency loader for commands, so that the graph is only
// built once a command actually runs.
func DepsFn[T any]() func() (T, func()) {
	return func() (T, func()) {
		var deps T
		stop := Start(fx.Populate(&deps))
		return deps, stop
	}
}
