package service

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/gazeseq/internal/model"
	pkgerrors "exusiai.dev/gazeseq/internal/pkg/errors"
)

func TestBuildPartitionsInArrivalOrder(t *testing.T) {
	rows := lo.Flatten([][]*model.HitRow{
		hitRows(2, "Bar", "C"),
		hitRows(1, "Bar", "A", "B"),
		hitRows(2, "Bar", "A"),
		hitRows(1, "Bar", "A"),
	})

	traces, result, err := newTestTraceBuilder(t).Build(context.Background(), numberLines(rows), BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, traces.ParticipantIDs())
	assert.Zero(t, result.SkippedRows)
	assert.Empty(t, result.Warnings)

	p1, _ := traces.Get(1)
	assert.Equal(t, symbols("A", "B", "A"), p1.Symbols())
	for i, e := range p1.Events {
		assert.Equal(t, i+1, e.Position)
		assert.Equal(t, 1, e.ParticipantID)
	}

	p2, _ := traces.Get(2)
	assert.Equal(t, symbols("C", "A"), p2.Symbols())
}

func TestBuildSkipsMalformedRows(t *testing.T) {
	rows := hitRows(1, "Bar", "A", "B", "C")
	rows[1].Symbol = null.String{}
	rows = append(rows, &model.HitRow{ChartName: "Bar", Symbol: null.StringFrom("A")})
	rows = append(rows, hitRows(1, "Bar", "D")...)

	traces, result, err := newTestTraceBuilder(t, &model.RejectRule{RuleID: 1, Expr: `Symbol == "D"`}).
		Build(context.Background(), numberLines(rows), BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, result.SkippedRows)
	assert.Len(t, result.Violations, 3)
	p1, _ := traces.Get(1)
	assert.Equal(t, symbols("A", "C"), p1.Symbols())
	assert.Equal(t, 2, p1.Events[1].Position)

	require.Len(t, result.Warnings, 1)
	assert.ErrorIs(t, result.Warnings[0], pkgerrors.ErrMalformedRow)
}

func TestBuildChartFilterKeepsEmptyTraces(t *testing.T) {
	rows := lo.Flatten([][]*model.HitRow{
		hitRows(1, "Bar", "A", "B"),
		hitRows(2, "Line", "A"),
		hitRows(1, "Line", "C"),
	})

	traces, result, err := newTestTraceBuilder(t).Build(context.Background(), numberLines(rows), BuildOptions{
		Chart:                "Bar",
		ExpectedParticipants: []int{3},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, traces.ParticipantIDs())
	assert.Equal(t, []int{2, 3}, result.EmptyTraces)
	p1, _ := traces.Get(1)
	assert.Equal(t, symbols("A", "B"), p1.Symbols())
	p2, _ := traces.Get(2)
	assert.Zero(t, p2.Len())

	require.Len(t, result.Warnings, 2)
	for _, w := range result.Warnings {
		assert.ErrorIs(t, w, pkgerrors.ErrEmptyTrace)
		assert.False(t, w.Fatal())
	}
}

func TestBuildRejectsUnorderedInput(t *testing.T) {
	rows := hitRows(1, "Bar", "A", "B", "C")
	rows[0].Ordinal = null.IntFrom(1)
	rows[1].Ordinal = null.IntFrom(3)
	rows[2].Ordinal = null.IntFrom(2)

	_, _, err := newTestTraceBuilder(t).Build(context.Background(), numberLines(rows), BuildOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrUnorderedInput)

	rows[2].Ordinal = null.IntFrom(4)
	_, _, err = newTestTraceBuilder(t).Build(context.Background(), rows, BuildOptions{})
	assert.NoError(t, err)
}
