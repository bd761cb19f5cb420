package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/gazeseq/internal/model"
	pkgerrors "exusiai.dev/gazeseq/internal/pkg/errors"
)

func patternTexts(patterns []*model.Pattern) []string {
	return lo.Map(patterns, func(p *model.Pattern, _ int) string {
		return p.String()
	})
}

func TestPrefixSpanGapAwareContainment(t *testing.T) {
	traces := traceSet(map[int][]string{
		1: {"A", "B", "C", "A", "B"},
		2: {"A", "X", "B"},
		3: {"C", "C"},
	})
	conf := model.MiningConfig{MinSupport: 0.5, MaxGap: 1, MaxLength: 50, MaxPatternSize: 5}

	patterns, err := NewPrefixSpanSource().Mine(context.Background(), traces, conf)
	require.NoError(t, err)
	assert.Equal(t, []string{"[A]", "[A, B]", "[B]", "[C]"}, patternTexts(patterns))
	for _, p := range patterns {
		assert.InDelta(t, 2.0/3.0, p.GlobalSupport, 1e-9)
	}

	conf.MaxGap = 0
	patterns, err = NewPrefixSpanSource().Mine(context.Background(), traces, conf)
	require.NoError(t, err)
	assert.Equal(t, []string{"[A]", "[B]", "[C]"}, patternTexts(patterns))
}

func TestPrefixSpanKeepsRepeatsWithinBounds(t *testing.T) {
	traces := traceSet(map[int][]string{
		1: {"A", "A", "A"},
		2: {"A", "A", "A", "B"},
	})

	patterns, err := NewPrefixSpanSource().Mine(context.Background(), traces, model.MiningConfig{
		MinSupport: 1, MaxGap: 0, MaxLength: 2, MaxPatternSize: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"[A]", "[A, A]"}, patternTexts(patterns))
}

func TestPrefixSpanContract(t *testing.T) {
	traces := traceSet(map[int][]string{
		1: {"A", "B", "C", "D", "A", "B", "C"},
		2: {"B", "C", "A", "B", "D", "C"},
		3: {"A", "C", "B", "D", "A", "B"},
		4: {"D", "A", "B", "C", "C", "A"},
	})
	conf := model.MiningConfig{MinSupport: 0.5, MaxGap: 2, MaxLength: 3, MaxPatternSize: 2}

	patterns, err := NewPrefixSpanSource().Mine(context.Background(), traces, conf)
	require.NoError(t, err)
	require.NotEmpty(t, patterns)

	seen := map[string]bool{}
	for _, p := range patterns {
		assert.GreaterOrEqual(t, p.GlobalSupport, conf.MinSupport, p.String())
		assert.LessOrEqual(t, p.GlobalSupport, 1.0)
		assert.LessOrEqual(t, p.Len(), conf.MaxLength, p.String())
		assert.LessOrEqual(t, p.UniqueSymbolCount(), conf.MaxPatternSize, p.String())
		assert.False(t, seen[p.Key()], "duplicate %s", p)
		seen[p.Key()] = true
	}
}

func TestPrefixSpanInvalidConfig(t *testing.T) {
	_, err := NewPrefixSpanSource().Mine(context.Background(), traceSet(map[int][]string{1: {"A"}}), model.MiningConfig{
		MinSupport: 0, MaxGap: 1, MaxLength: 1, MaxPatternSize: 1,
	})
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidConfig)
}

func TestPrefixSpanCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPrefixSpanSource().Mine(ctx, traceSet(map[int][]string{1: {"A", "B"}}), model.MiningConfig{
		MinSupport: 0.5, MaxGap: 1, MaxLength: 5, MaxPatternSize: 5,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParsePatternCSV(t *testing.T) {
	in := "Sequence,Support\n\"[A, B]\",0.75\n\"['C', 'C']\",0.5\n"

	patterns, err := ParsePatternCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, patterns, 2)
	assert.Equal(t, symbols("A", "B"), patterns[0].Symbols)
	assert.Equal(t, 0.75, patterns[0].GlobalSupport)
	assert.Equal(t, symbols("C", "C"), patterns[1].Symbols)

	_, err = ParsePatternCSV(strings.NewReader("Pattern,Count\nA,1\n"))
	assert.ErrorIs(t, err, ErrMissingPatternColumn)

	_, err = ParsePatternCSV(strings.NewReader("Sequence,Support\n\"[A]\",high\n"))
	assert.Error(t, err)
}

func TestParsePatternJSON(t *testing.T) {
	in := `[{"sequence": ["A", "B"], "support": 0.5}, {"sequence": "[C, A]", "support": 1}]`

	patterns, err := ParsePatternJSON([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"[A, B]", "[C, A]"}, patternTexts(patterns))
	assert.Equal(t, 1.0, patterns[1].GlobalSupport)

	_, err = ParsePatternJSON([]byte(`{"sequence": ["A"]}`))
	assert.Error(t, err)
	_, err = ParsePatternJSON([]byte(`[{"sequence": []}]`))
	assert.Error(t, err)
	_, err = ParsePatternJSON([]byte(`[{"sequence": [], "support": 1}]`))
	assert.ErrorIs(t, err, model.ErrInvalidPatternText)
}

func TestFilePatternSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"sequence": ["A"], "support": 0.9},
		{"sequence": ["A", "B", "C"], "support": 0.6},
		{"sequence": ["B"], "support": 0.2}
	]`), 0o644))

	conf := model.MiningConfig{MinSupport: 0.5, MaxGap: 1, MaxLength: 2, MaxPatternSize: 5}
	patterns, err := NewFilePatternSource(path).Mine(context.Background(), traceSet(nil), conf)
	require.NoError(t, err)
	assert.Equal(t, []string{"[A]"}, patternTexts(patterns))

	_, err = NewFilePatternSource(filepath.Join(dir, "missing.csv")).Mine(context.Background(), traceSet(nil), conf)
	assert.ErrorIs(t, err, pkgerrors.ErrPatternSourceUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)

	txt := filepath.Join(dir, "patterns.txt")
	require.NoError(t, os.WriteFile(txt, []byte("A"), 0o644))
	_, err = NewFilePatternSource(txt).Mine(context.Background(), traceSet(nil), conf)
	assert.ErrorIs(t, err, ErrUnsupportedPatternFile)
}
