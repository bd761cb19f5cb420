package util

import (
	"math"

	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"
)

// MeanInts returns the arithmetic mean, or NaN for an empty input.
func MeanInts(values []int) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// FractionPositive returns the share of values greater than zero, or NaN for an empty input.
func FractionPositive(values []int) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	positive := 0
	for _, v := range values {
		if v > 0 {
			positive++
		}
	}
	return float64(positive) / float64(len(values))
}

// CountBuckets groups values into value -> times seen.
func CountBuckets(values []int) map[int]int {
	buckets := make(map[int]int)
	for _, v := range values {
		buckets[v]++
	}
	return buckets
}

// CalcStdDevFromCountBuckets computes the standard deviation of a distribution given
// as count -> number of participants with that count.
func CalcStdDevFromCountBuckets(countBuckets map[int]int, times int, isUnbiased bool) float64 {
	denominator := times
	if isUnbiased {
		denominator -= 1
	}
	if times == 0 || denominator <= 0 {
		return 0
	}
	sum := 0
	squareSum := 0
	for count, n := range countBuckets {
		sum += count * n
		squareSum += count * count * n
	}
	variance := float64(squareSum)/float64(denominator) - math.Pow(float64(sum)/float64(times), 2)*float64(times)/float64(denominator)
	if variance < -0.05 {
		// should not happen, unless the buckets disagree with times
		log.Error().Msgf("variance is less than -0.05: %f", variance)
		return 0
	} else if variance < 0 {
		// float error; not worth logging above warn
		log.Warn().Msgf("variance is less than 0: %f", variance)
		return 0
	}
	return math.Sqrt(variance)
}

func RoundFloat64(f float64, n int) float64 {
	pow := math.Pow10(n)
	return math.Round(f*pow) / pow
}

// NullableFloat maps NaN to an invalid null.Float.
func NullableFloat(f float64) null.Float {
	return null.NewFloat(f, !math.IsNaN(f))
}
