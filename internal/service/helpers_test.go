package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/gazeseq/internal/model"
	"exusiai.dev/gazeseq/internal/repo"
	"exusiai.dev/gazeseq/internal/util/rowverifs"
)

func hitRows(participant int, chart string, symbols ...string) []*model.HitRow {
	rows := make([]*model.HitRow, 0, len(symbols))
	for _, s := range symbols {
		rows = append(rows, &model.HitRow{
			ParticipantID: null.IntFrom(int64(participant)),
			ChartName:     chart,
			Symbol:        null.StringFrom(s),
		})
	}
	return rows
}

func numberLines(rows []*model.HitRow) []*model.HitRow {
	for i, r := range rows {
		r.Line = i + 2
	}
	return rows
}

func newTestTraceBuilder(t *testing.T, rules ...*model.RejectRule) *TraceBuilder {
	t.Helper()
	rejectRuleVerifier, err := rowverifs.NewRejectRuleVerifier(repo.NewRejectRule(repo.NewProfileFrom(&model.Profile{RejectRules: rules})))
	require.NoError(t, err)
	return NewTraceBuilder(rowverifs.NewRowVerifier(rowverifs.NewParticipantVerifier(), rowverifs.NewSymbolVerifier(), rejectRuleVerifier))
}

func symbols(s ...string) []model.Symbol {
	out := make([]model.Symbol, len(s))
	for i, v := range s {
		out[i] = model.Symbol(v)
	}
	return out
}

func traceSet(traces map[int][]string) *model.TraceSet {
	var list []*model.Trace
	for id, syms := range traces {
		tr := &model.Trace{ParticipantID: id}
		for i, s := range syms {
			tr.Events = append(tr.Events, model.Event{ParticipantID: id, Position: i + 1, Symbol: model.Symbol(s)})
		}
		list = append(list, tr)
	}
	return model.NewTraceSet(list)
}
