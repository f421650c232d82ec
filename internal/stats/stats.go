// Package stats provides the descriptive statistics computed over numeric
// source columns during normalization.
//
// The statistic set is the five-number summary plus count, mean, and sample
// standard deviation, matching what tabular adapters store under a dataset's
// metrics section.
package stats

import (
	"math"
	"slices"

	"github.com/arloai/reportgen/internal/model"
)

// Describe computes descriptive statistics over values.
// An empty slice yields the zero Summary.
//
// Design decision: We use the sample standard deviation (n-1 denominator)
// and linearly interpolated percentiles because that is what the original
// engine produced for the same columns; widgets compare stats across
// sources and the definitions must stay consistent.
func Describe(values []float64) model.Summary {
	if len(values) == 0 {
		return model.Summary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	slices.Sort(sorted)

	n := float64(len(sorted))
	mean := sum(sorted) / n

	return model.Summary{
		Count:  n,
		Mean:   mean,
		Std:    sampleStd(sorted, mean),
		Min:    sorted[0],
		Q1:     Percentile(sorted, 0.25),
		Median: Percentile(sorted, 0.50),
		Q3:     Percentile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

// Percentile returns the p-th percentile (0 <= p <= 1) of sorted values
// using linear interpolation between the two nearest ranks.
// The input must already be sorted ascending.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}

	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// sum returns the total of all values.
func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// sampleStd returns the sample standard deviation around mean.
// Returns 0 for fewer than two values, where the statistic is undefined.
func sampleStd(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
