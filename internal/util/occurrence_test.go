package util

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"exusiai.dev/gazeseq/internal/model"
)

func symbols(s string) []model.Symbol {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]model.Symbol, len(parts))
	for i, p := range parts {
		out[i] = model.Symbol(p)
	}
	return out
}

func TestCountOccurrences(t *testing.T) {
	type testCase struct {
		name    string
		trace   string
		pattern string
		maxGap  int
		expect  int
	}

	testCases := []testCase{
		{"contiguous repeats", "A,B,C,A,B,C", "A,B", 0, 2},
		{"one intervening event within gap", "A,X,B", "A,B", 1, 1},
		{"one intervening event without gap", "A,X,B", "A,B", 0, 0},
		{"single symbol counts positions", "A,A,A", "A", 0, 3},
		{"single symbol ignores gap", "A,B,A", "A", 5, 2},
		{"trace shorter than pattern", "A,B", "A,B,C", 3, 0},
		{"empty trace", "", "A", 1, 0},
		{"symbols absent from trace", "A,B,C", "X,Y", 2, 0},
		{"overlapping starts counted independently", "A,A,B", "A,B", 1, 2},
		{"gap of two", "A,X,Y,B", "A,B", 2, 1},
		{"gap of two exceeded", "A,X,Y,Z,B", "A,B", 2, 0},
		// the greedy pick takes the first B, after which C is out of reach, although
		// picking the second B would have matched
		{"greedy first-fit does not backtrack", "A,B,B,X,C", "A,B,C", 1, 0},
		{"case sensitive", "a,B", "A,B", 0, 0},
		{"repeated pattern symbols", "A,A,A,A", "A,A", 0, 3},
		{"start beyond last feasible position", "X,A,B,A", "A,B", 0, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := CountOccurrences(symbols(tc.pattern), symbols(tc.trace), tc.maxGap)
			assert.Equal(t, tc.expect, got)

			indexed := NewPositionIndex(symbols(tc.trace)).Count(symbols(tc.pattern), tc.maxGap)
			assert.Equal(t, tc.expect, indexed, "indexed count")
		})
	}
}

var alphabet = []model.Symbol{"A", "B", "C", "D"}

func randomSymbols(r *rand.Rand, n int) []model.Symbol {
	out := make([]model.Symbol, n)
	for i := range out {
		out[i] = alphabet[r.Intn(len(alphabet))]
	}
	return out
}

func TestCountOccurrencesSingleSymbolEqualsFrequency(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		trace := randomSymbols(r, r.Intn(30))
		s := alphabet[r.Intn(len(alphabet))]

		expected := 0
		for _, e := range trace {
			if e == s {
				expected++
			}
		}
		assert.Equal(t, expected, CountOccurrences([]model.Symbol{s}, trace, r.Intn(4)))
	}
}

func TestCountOccurrencesMonotonicInMaxGap(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		trace := randomSymbols(r, r.Intn(40))
		pattern := randomSymbols(r, 1+r.Intn(4))

		prev := -1
		for gap := 0; gap <= 6; gap++ {
			got := CountOccurrences(pattern, trace, gap)
			assert.GreaterOrEqual(t, got, prev, "trace=%v pattern=%v gap=%d", trace, pattern, gap)
			prev = got
		}
	}
}

func TestCountOccurrencesShortTraceIsZero(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		pattern := randomSymbols(r, 2+r.Intn(5))
		trace := randomSymbols(r, r.Intn(len(pattern)))
		assert.Zero(t, CountOccurrences(pattern, trace, 10))
		assert.Zero(t, NewPositionIndex(trace).Count(pattern, 10))
	}
}

func TestPositionIndexMatchesScan(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		trace := randomSymbols(r, r.Intn(50))
		pattern := randomSymbols(r, 1+r.Intn(5))
		gap := r.Intn(5)

		assert.Equal(t,
			CountOccurrences(pattern, trace, gap),
			NewPositionIndex(trace).Count(pattern, gap),
			"trace=%v pattern=%v gap=%d", trace, pattern, gap)
	}
}
