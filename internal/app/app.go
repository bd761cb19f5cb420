package app

import (
	"time"

	"go.uber.org/fx"

	"exusiai.dev/gazeseq/internal/app/appconfig"
	"exusiai.dev/gazeseq/internal/app/appcontext"
	"exusiai.dev/gazeseq/internal/infra"
	"exusiai.dev/gazeseq/internal/pkg/logger"
	"exusiai.dev/gazeseq/internal/repo"
	"exusiai.dev/gazeseq/internal/service"
	"exusiai.dev/gazeseq/internal/util/rowverifs"
	"exusiai.dev/gazeseq/internal/workers/calcwkr"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	return OptionsWithConfig(conf, additionalOpts...)
}

// OptionsWithConfig builds the graph around an already parsed configuration.
func OptionsWithConfig(conf *appconfig.Config, additionalOpts ...fx.Option) []fx.Option {
	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Repositories
		repo.Module(),

		// Verifiers
		rowverifs.Module(),

		// Services
		service.Module(),

		// Workers
		fx.Provide(calcwkr.New),

		// fx Extra Options
		fx.StartTimeout(5 * time.Second),
		// flushes pending trace batches on the way out
		fx.StopTimeout(30 * time.Second),
	}

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
