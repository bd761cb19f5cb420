package service

import (
	"github.com/ahmetb/go-linq/v3"
	"github.com/samber/lo"

	"exusiai.dev/gazeseq/internal/model"
	"exusiai.dev/gazeseq/internal/util"
)

type Metadata struct{}

func NewMetadata() *Metadata {
	return &Metadata{}
}

// Compute joins every pattern with its counts and derived statistics. Records are
// ordered by true support, then average count (both descending), then symbols.
func (s *Metadata) Compute(patterns []*model.Pattern, counts *model.CountTable) []*model.PatternRecord {
	participants := counts.Participants()

	records := lo.Map(patterns, func(p *model.Pattern, _ int) *model.PatternRecord {
		row := counts.Row(p.Key())
		values := lo.Map(participants, func(id int, _ int) int {
			return row[id]
		})
		return &model.PatternRecord{
			Pattern:           p,
			Length:            p.Len(),
			UniqueSymbolCount: p.UniqueSymbolCount(),
			Counts:            row,
			AvgCount:          util.MeanInts(values),
			TrueSupport:       util.FractionPositive(values),
			CountStdDev:       util.CalcStdDevFromCountBuckets(util.CountBuckets(values), len(values), false),
		}
	})

	SortRecords(records)
	return records
}

// SortRecords orders records by descending true support, then descending average
// count, then ascending symbol sequence. NaN sorts last.
func SortRecords(records []*model.PatternRecord) {
	var sorted []*model.PatternRecord
	linq.From(records).
		OrderByDescendingT(func(r *model.PatternRecord) float64 {
			return sortKey(r.TrueSupport)
		}).
		ThenByDescendingT(func(r *model.PatternRecord) float64 {
			return sortKey(r.AvgCount)
		}).
		ThenByT(func(r *model.PatternRecord) string {
			// separator sorts below any printable symbol, so this is element-wise order
			return r.Pattern.Key()
		}).
		ToSlice(&sorted)

	copy(records, sorted)
}

func sortKey(f float64) float64 {
	if f != f {
		return -1
	}
	return f
}
