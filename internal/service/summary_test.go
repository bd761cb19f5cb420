package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/gazeseq/internal/model"
)

func TestSummarizeWithoutRecords(t *testing.T) {
	summary := NewSummary().Summarize(nil)

	assert.Equal(t, 0, summary.NumberOfSequences)
	assert.False(t, summary.TotalAverageCounts.Valid)
	assert.False(t, summary.AverageSequenceLength.Valid)
	assert.False(t, summary.AverageUniqueAOIs.Valid)
}

func TestSummarizeAveragesRecords(t *testing.T) {
	records := []*model.PatternRecord{
		{Pattern: model.NewPattern(1, symbols("A")...), Length: 1, UniqueSymbolCount: 1, AvgCount: 3},
		{Pattern: model.NewPattern(1, symbols("A", "A", "B")...), Length: 3, UniqueSymbolCount: 2, AvgCount: 1},
		{Pattern: model.NewPattern(1, symbols("A", "B")...), Length: 2, UniqueSymbolCount: 2, AvgCount: 0.5},
	}

	summary := NewSummary().Summarize(records)

	assert.Equal(t, 3, summary.NumberOfSequences)
	assert.Equal(t, null.FloatFrom(1.5), summary.TotalAverageCounts)
	assert.Equal(t, null.FloatFrom(2), summary.AverageSequenceLength)
	assert.InDelta(t, 5.0/3.0, summary.AverageUniqueAOIs.Float64, 1e-9)
}
