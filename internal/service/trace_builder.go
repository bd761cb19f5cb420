package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"exusiai.dev/gazeseq/internal/model"
	pkgerrors "exusiai.dev/gazeseq/internal/pkg/errors"
	"exusiai.dev/gazeseq/internal/util/rowverifs"
)

type BuildOptions struct {
	// Chart keeps only rows of this chart. Empty keeps every row.
	Chart string
	// ExpectedParticipants get a trace even when they have no rows.
	ExpectedParticipants []int
}

type BuildResult struct {
	Violations  rowverifs.Violations
	SkippedRows int
	EmptyTraces []int
	Warnings    []*pkgerrors.AnalysisError
}

// TraceBuilder turns hit rows into one trace per participant. Rows must arrive in
// chronological order per participant; the builder keeps arrival order and never
// sorts. Rows carrying an explicit ordinal are checked against that order.
type TraceBuilder struct {
	RowVerifiers *rowverifs.RowVerifiers
}

func NewTraceBuilder(rowVerifiers *rowverifs.RowVerifiers) *TraceBuilder {
	return &TraceBuilder{
		RowVerifiers: rowVerifiers,
	}
}

func (s *TraceBuilder) Build(ctx context.Context, rows []*model.HitRow, opts BuildOptions) (*model.TraceSet, *BuildResult, error) {
	result := &BuildResult{
		Violations: s.RowVerifiers.Verify(ctx, rows),
	}

	events := make(map[int][]model.Event)
	lastOrdinal := make(map[int]int64)
	for _, id := range opts.ExpectedParticipants {
		events[id] = nil
	}

	for i, row := range rows {
		if violation, ok := result.Violations[i]; ok {
			result.SkippedRows++
			log.Debug().
				Str("evt.name", "trace_builder.row_rejected").
				Str("source", row.Source).
				Int("line", row.Line).
				Str("verifier", violation.Name).
				Str("reason", violation.Message).
				Msg("row excluded from traces")
			continue
		}

		participantID := int(row.ParticipantID.Int64)
		if _, ok := events[participantID]; !ok {
			events[participantID] = nil
		}

		if opts.Chart != "" && row.ChartName != opts.Chart {
			continue
		}

		if row.Ordinal.Valid {
			if last, ok := lastOrdinal[participantID]; ok && row.Ordinal.Int64 < last {
				return nil, nil, pkgerrors.ErrUnorderedInput.
					WithMessage("participant %d: position %d follows position %d (%s line %d)", participantID, row.Ordinal.Int64, last, row.Source, row.Line).
					WithExtras(pkgerrors.Extras{"participant": participantID, "line": row.Line})
			}
			lastOrdinal[participantID] = row.Ordinal.Int64
		}

		events[participantID] = append(events[participantID], model.Event{
			ParticipantID: participantID,
			Position:      len(events[participantID]) + 1,
			Symbol:        model.Symbol(row.Symbol.String),
		})
	}

	if result.SkippedRows > 0 {
		result.Warnings = append(result.Warnings, pkgerrors.ErrMalformedRow.
			WithMessage("%d row(s) excluded from traces", result.SkippedRows).
			WithExtras(pkgerrors.Extras{"skippedRows": result.SkippedRows}))
	}

	traces := make([]*model.Trace, 0, len(events))
	for id, evts := range events {
		traces = append(traces, &model.Trace{ParticipantID: id, Events: evts})
		if len(evts) == 0 {
			result.EmptyTraces = append(result.EmptyTraces, id)
		}
	}
	sort.Ints(result.EmptyTraces)

	for _, id := range result.EmptyTraces {
		result.Warnings = append(result.Warnings, pkgerrors.ErrEmptyTrace.
			WithMessage("participant %d has no events for chart %q", id, opts.Chart).
			WithExtras(pkgerrors.Extras{"participant": id}))
	}

	set := model.NewTraceSet(traces)

	if l := log.Trace(); l.Enabled() {
		l.Interface("lengths", lo.Map(set.Traces(), func(t *model.Trace, _ int) int {
			return t.Len()
		})).Msg("traces built")
	}

	return set, result, nil
}
