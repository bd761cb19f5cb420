package service

import (
	"github.com/ahmetb/go-linq/v3"
	"github.com/rs/zerolog/log"

	"exusiai.dev/gazeseq/internal/model"
	pkgerrors "exusiai.dev/gazeseq/internal/pkg/errors"
	"exusiai.dev/gazeseq/internal/util"
)

type Summary struct{}

func NewSummary() *Summary {
	return &Summary{}
}

// Summarize reduces the records to corpus-level figures. Without records the means
// are undefined rather than zero.
func (s *Summary) Summarize(records []*model.PatternRecord) *model.SummaryRecord {
	summary := &model.SummaryRecord{
		NumberOfSequences: len(records),
	}
	if len(records) == 0 {
		log.Info().
			Str("evt.name", "summary.undefined").
			Str("code", pkgerrors.ErrAggregationUndefined.ErrorCode).
			Msg(pkgerrors.ErrAggregationUndefined.Message)
		return summary
	}

	q := linq.From(records)
	summary.TotalAverageCounts = util.NullableFloat(q.
		SelectT(func(r *model.PatternRecord) float64 { return r.AvgCount }).
		Average())
	summary.AverageSequenceLength = util.NullableFloat(q.
		SelectT(func(r *model.PatternRecord) int { return r.Length }).
		Average())
	summary.AverageUniqueAOIs = util.NullableFloat(q.
		SelectT(func(r *model.PatternRecord) int { return r.UniqueSymbolCount }).
		Average())
	return summary
}
