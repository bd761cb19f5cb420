package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

var validate = validator.New()

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		NewTraceBuilder,
		NewPatternSource,
		NewOccurrenceCounter,
		NewMetadata,
		NewSummary,
		NewReportWriter,
		NewArchive,
		NewAnalysis,
		NewCleaner,
	))
}
