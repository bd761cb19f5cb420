package service

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"exusiai.dev/gazeseq/internal/app/appconfig"
	"exusiai.dev/gazeseq/internal/model"
	"exusiai.dev/gazeseq/internal/pkg/observability"
	"exusiai.dev/gazeseq/internal/util"
)

// OccurrenceCounter fills the pattern × participant count grid. Cells are
// independent, so they are computed in parallel; the table is only returned once
// every cell is written.
type OccurrenceCounter struct {
	concurrency int
}

func NewOccurrenceCounter(conf *appconfig.Config) *OccurrenceCounter {
	return &OccurrenceCounter{concurrency: conf.CountConcurrency}
}

func (s *OccurrenceCounter) Count(ctx context.Context, patterns []*model.Pattern, traces *model.TraceSet, maxGap int) (*model.CountTable, error) {
	participants := traces.ParticipantIDs()
	table := model.NewCountTable(patterns, participants)

	limit := s.concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	// one task per participant; its position index is shared by every pattern
	for _, id := range participants {
		id := id
		trace, _ := traces.Get(id)
		eg.Go(func() error {
			index := util.NewPositionIndex(trace.Symbols())
			for _, p := range patterns {
				if err := ctx.Err(); err != nil {
					return err
				}
				*table.Cell(p.Key(), id) = index.Count(p.Symbols, maxGap)
			}
			observability.CellsCounted.Add(float64(len(patterns)))
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return table, nil
}
