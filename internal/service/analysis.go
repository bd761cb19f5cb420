package service

import (
	"context"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"exusiai.dev/gazeseq/internal/app/appconfig"
	"exusiai.dev/gazeseq/internal/constant"
	"exusiai.dev/gazeseq/internal/model"
	pkgerrors "exusiai.dev/gazeseq/internal/pkg/errors"
	"exusiai.dev/gazeseq/internal/pkg/observability"
	"exusiai.dev/gazeseq/internal/repo"
)

var tracer = otel.Tracer("service.analysis")

// Analysis runs the pipeline for one dataset. Stages run strictly one after the
// other and never modify an earlier stage's output.
type Analysis struct {
	Config            *appconfig.Config
	HitRepo           *repo.Hit
	TraceBuilder      *TraceBuilder
	PatternSource     PatternSource
	OccurrenceCounter *OccurrenceCounter
	Metadata          *Metadata
	Summary           *Summary
	ReportWriter      *ReportWriter
	Archive           *Archive
}

func NewAnalysis(
	conf *appconfig.Config,
	hitRepo *repo.Hit,
	traceBuilder *TraceBuilder,
	patternSource PatternSource,
	occurrenceCounter *OccurrenceCounter,
	metadata *Metadata,
	summary *Summary,
	reportWriter *ReportWriter,
	archive *Archive,
) *Analysis {
	return &Analysis{
		Config:            conf,
		HitRepo:           hitRepo,
		TraceBuilder:      traceBuilder,
		PatternSource:     patternSource,
		OccurrenceCounter: occurrenceCounter,
		Metadata:          metadata,
		Summary:           summary,
		ReportWriter:      reportWriter,
		Archive:           archive,
	}
}

type ExecuteResult struct {
	Report     *model.Report
	Path       string
	ArchiveKey string
}

// Execute loads the dataset's inputs, analyzes them, writes the report and
// publishes it when an archive bucket is configured.
func (s *Analysis) Execute(ctx context.Context, dataset *model.Dataset) (*ExecuteResult, error) {
	var rows []*model.HitRow
	err := s.stage(ctx, constant.StageLoad, func(ctx context.Context) (err error) {
		rows, err = s.HitRepo.LoadFiles(ctx, dataset.Inputs)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load inputs")
	}

	report, err := s.Analyze(ctx, dataset, rows)
	if err != nil {
		return nil, err
	}

	format := dataset.Format
	if format == "" {
		format = constant.ReportFormatCSV
	}
	path := dataset.Output
	if path == "" {
		path = filepath.Join(s.Config.OutputDir, dataset.Name+"_results."+format)
	}

	body, err := s.ReportWriter.WriteFile(path, report, format)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("evt.name", "analysis.report_written").
		Str("dataset", dataset.Name).
		Str("path", path).
		Msg("report written")

	key, err := s.Archive.Publish(ctx, dataset.Name, report.GeneratedAt, body, "."+format)
	if err != nil {
		return nil, err
	}

	return &ExecuteResult{Report: report, Path: path, ArchiveKey: key}, nil
}

// Analyze runs the pipeline from already loaded rows.
func (s *Analysis) Analyze(ctx context.Context, dataset *model.Dataset, rows []*model.HitRow) (*model.Report, error) {
	ctx, span := tracer.Start(ctx, "analysis.analyze",
		trace.WithAttributes(attribute.String("dataset", dataset.Name), attribute.Int("rows", len(rows))))
	defer span.End()

	logger := log.With().Str("dataset", dataset.Name).Logger()
	mining := s.Config.MiningConfig()
	countMaxGap := s.Config.CountMaxGap

	if mining.MaxGap != countMaxGap {
		logger.Warn().
			Str("evt.name", "analysis.max_gap_mismatch").
			Int("miningMaxGap", mining.MaxGap).
			Int("countMaxGap", countMaxGap).
			Msg("mining and counting use different max gaps; support and true support measure different containment")
	}

	report := &model.Report{
		RunID:       ulid.Make().String(),
		Dataset:     dataset.Name,
		GeneratedAt: time.Now().UTC(),
		Mining:      mining,
		CountMaxGap: countMaxGap,
	}

	var (
		traces      *model.TraceSet
		buildResult *BuildResult
	)
	err := s.stage(ctx, constant.StageBuild, func(ctx context.Context) (err error) {
		traces, buildResult, err = s.TraceBuilder.Build(ctx, rows, BuildOptions{
			Chart:                dataset.Chart,
			ExpectedParticipants: dataset.Participants,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	for _, w := range buildResult.Warnings {
		logWarning(&logger, w)
	}
	report.ParticipantIDs = traces.ParticipantIDs()
	report.SkippedRows = buildResult.SkippedRows
	report.EmptyTraces = buildResult.EmptyTraces

	var patterns []*model.Pattern
	err = s.stage(ctx, constant.StageMine, func(ctx context.Context) (err error) {
		patterns, err = s.PatternSource.Mine(ctx, traces, mining)
		return err
	})
	if err != nil {
		return nil, wrapPatternSourceError(ctx, s.PatternSource.Name(), err)
	}
	observability.PatternsDiscovered.WithLabelValues(dataset.Name, s.PatternSource.Name()).Set(float64(len(patterns)))
	if len(patterns) == 0 {
		logWarning(&logger, pkgerrors.ErrNoPatternsFound.WithExtras(pkgerrors.Extras{"source": s.PatternSource.Name()}))
	}

	var counts *model.CountTable
	err = s.stage(ctx, constant.StageCount, func(ctx context.Context) (err error) {
		counts, err = s.OccurrenceCounter.Count(ctx, patterns, traces, countMaxGap)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count occurrences")
	}

	_ = s.stage(ctx, constant.StageMetadata, func(ctx context.Context) error {
		report.Records = s.Metadata.Compute(patterns, counts)
		return nil
	})
	_ = s.stage(ctx, constant.StageSummarize, func(ctx context.Context) error {
		report.Summary = s.Summary.Summarize(report.Records)
		return nil
	})

	logger.Info().
		Str("evt.name", "analysis.completed").
		Str("runId", report.RunID).
		Int("participants", len(report.ParticipantIDs)).
		Int("skippedRows", report.SkippedRows).
		Int("patterns", report.Summary.NumberOfSequences).
		Msg("analysis completed")

	return report, nil
}

func (s *Analysis) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "analysis.stage."+name)
	defer span.End()

	err := fn(ctx)

	elapsed := time.Since(start)
	observability.StageDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	log.Debug().
		Str("evt.name", "analysis.stage").
		Str("stage", name).
		Dur("duration", elapsed).
		Err(err).
		Msg("stage finished")
	return err
}

func wrapPatternSourceError(ctx context.Context, source string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var analysisErr *pkgerrors.AnalysisError
	if errors.As(err, &analysisErr) && analysisErr.Fatal() {
		return err
	}
	return pkgerrors.ErrPatternSourceUnavailable.
		WithMessage("pattern source %s failed", source).
		WithCause(err)
}

func logWarning(logger *zerolog.Logger, w *pkgerrors.AnalysisError) {
	evt := logger.Warn().
		Str("evt.name", "analysis.warning").
		Str("code", w.ErrorCode)
	if w.Extras != nil {
		evt = evt.Interface("extras", *w.Extras)
	}
	evt.Msg(w.Message)
}
