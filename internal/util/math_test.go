package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanAndFraction(t *testing.T) {
	assert.True(t, math.IsNaN(MeanInts(nil)))
	assert.True(t, math.IsNaN(FractionPositive(nil)))

	assert.Equal(t, 0.5, MeanInts([]int{1, 0}))
	assert.Equal(t, 0.5, FractionPositive([]int{1, 0}))
	assert.Equal(t, 1.0, FractionPositive([]int{2, 1, 5}))
}

func TestCalcStdDevFromCountBuckets(t *testing.T) {
	values := []int{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 2.0, CalcStdDevFromCountBuckets(CountBuckets(values), len(values), false), 1e-9)
	assert.Zero(t, CalcStdDevFromCountBuckets(CountBuckets(nil), 0, false))
	assert.Zero(t, CalcStdDevFromCountBuckets(CountBuckets([]int{3}), 1, true))
}

func TestNullableFloat(t *testing.T) {
	assert.False(t, NullableFloat(math.NaN()).Valid)
	assert.True(t, NullableFloat(0).Valid)
}
