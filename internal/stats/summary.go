// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"slices"

	mstats "github.com/montanaflynn/stats"

	"github.com/verte-zerg/cubelog/internal/model"
)

// Times extracts solve durations in order.
func Times(solves []model.Solve) []float64 {
	out := make([]float64, len(solves))
	for i, s := range solves {
		out[i] = s.TimeSeconds
	}
	return out
}

// Summarize computes descriptive statistics. It reports false for an empty set.
//
// Median is the sorted value at index n/2, which is the upper-middle element
// for even n. StdDev is the population standard deviation. Coefficient is NaN
// or Inf when the average is zero.
func Summarize(solves []model.Solve) (model.Summary, bool) {
	return summarizeValues(Times(solves))
}

func summarizeValues(values []float64) (model.Summary, bool) {
	if len(values) == 0 {
		return model.Summary{}, false
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean, err := mstats.Mean(values)
	if err != nil {
		return model.Summary{}, false
	}
	stdDev, err := mstats.StandardDeviationPopulation(values)
	if err != nil {
		return model.Summary{}, false
	}
	return model.Summary{
		Best:        sorted[0],
		Worst:       sorted[len(sorted)-1],
		Average:     mean,
		Median:      sorted[len(sorted)/2],
		StdDev:      stdDev,
		Coefficient: stdDev / mean * 100,
		Total:       len(values),
	}, true
}

// averageOrNaN returns the mean of the solves, or NaN when there are none.
func averageOrNaN(solves []model.Solve) float64 {
	summary, ok := Summarize(solves)
	if !ok {
		return math.NaN()
	}
	return summary.Average
}
