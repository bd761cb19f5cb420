package testentry

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"exusiai.dev/gazeseq/internal/app"
	"exusiai.dev/gazeseq/internal/app/appconfig"
	"exusiai.dev/gazeseq/internal/app/appcontext"
)

// Populate starts the application graph for a test and fills targets from it.
// mutate, when non-nil, adjusts the parsed configuration first.
func Populate(t zerolog.TestingLog, mutate func(*appconfig.Config), targets ...any) {
	conf, err := appconfig.Parse(appcontext.Declare(appcontext.EnvTest))
	if err != nil {
		panic(err)
	}
	conf.LogFile = ""
	if mutate != nil {
		mutate(conf)
	}

	log.Logger = zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)

	// for testing, logger is too annoying. therefore, we use a NopLogger here
	opts := app.OptionsWithConfig(conf, fx.Populate(targets...))
	opts = append(opts, fx.NopLogger)

	fxApp := fx.New(
		opts...,
	)

	if err := fxApp.Start(context.Background()); err != nil {
		panic(err)
	}
}
