package service

import (
	"math"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/gazeseq/internal/model"
)

func countTable(patterns []*model.Pattern, participants []int, rows map[string][]int) *model.CountTable {
	table := model.NewCountTable(patterns, participants)
	for key, counts := range rows {
		for i, id := range participants {
			*table.Cell(key, id) = counts[i]
		}
	}
	return table
}

func TestComputeDerivesStatistics(t *testing.T) {
	ab := model.NewPattern(0.5, symbols("A", "B")...)
	table := countTable([]*model.Pattern{ab}, []int{1, 2}, map[string][]int{
		ab.Key(): {1, 0},
	})

	records := NewMetadata().Compute([]*model.Pattern{ab}, table)
	require.Len(t, records, 1)

	r := records[0]
	assert.Same(t, ab, r.Pattern)
	assert.Equal(t, 2, r.Length)
	assert.Equal(t, 2, r.UniqueSymbolCount)
	assert.Equal(t, map[int]int{1: 1, 2: 0}, r.Counts)
	assert.Equal(t, 0.5, r.TrueSupport)
	assert.Equal(t, 0.5, r.AvgCount)
	assert.Equal(t, 0.5, r.CountStdDev)
}

func TestComputeOrdersRecords(t *testing.T) {
	a := model.NewPattern(1, symbols("A")...)
	ab := model.NewPattern(0.5, symbols("A", "B")...)
	b := model.NewPattern(1, symbols("B")...)
	cc := model.NewPattern(0.5, symbols("C", "C")...)
	patterns := []*model.Pattern{cc, b, ab, a}

	table := countTable(patterns, []int{1, 2, 3}, map[string][]int{
		a.Key():  {2, 1, 0},
		ab.Key(): {1, 1, 1},
		b.Key():  {1, 1, 1},
		cc.Key(): {0, 0, 3},
	})

	records := NewMetadata().Compute(patterns, table)
	assert.Equal(t, []string{"[A, B]", "[B]", "[A]", "[C, C]"}, lo.Map(records, func(r *model.PatternRecord, _ int) string {
		return r.Pattern.String()
	}))

	for _, r := range records {
		assert.GreaterOrEqual(t, r.TrueSupport, 0.0)
		assert.LessOrEqual(t, r.TrueSupport, 1.0)
		assert.GreaterOrEqual(t, r.AvgCount, 0.0)
		assert.GreaterOrEqual(t, r.Length, r.UniqueSymbolCount)
	}
}

func TestComputeWithoutParticipants(t *testing.T) {
	a := model.NewPattern(1, symbols("A")...)
	records := NewMetadata().Compute([]*model.Pattern{a}, model.NewCountTable([]*model.Pattern{a}, nil))
	require.Len(t, records, 1)
	assert.True(t, math.IsNaN(records[0].AvgCount))
	assert.True(t, math.IsNaN(records[0].TrueSupport))
}
