package stats

import (
	"slices"

	"github.com/verte-zerg/cubelog/internal/model"
)

const iqrFactor = 1.5

// OutlierBounds returns the IQR fences for values. Quartiles are read from the
// sorted values at indexes floor(0.25n) and floor(0.75n) without interpolation.
func OutlierBounds(values []float64) (lower, upper float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := len(sorted)
	q1 := sorted[int(float64(n)*0.25)]
	q3 := sorted[int(float64(n)*0.75)]
	iqr := q3 - q1
	return q1 - iqrFactor*iqr, q3 + iqrFactor*iqr, true
}

// DetectOutliers returns a copy of solves with IsOutlier set for every time
// strictly outside the IQR fences. Order is preserved.
func DetectOutliers(solves []model.Solve) []model.Solve {
	out := make([]model.Solve, len(solves))
	copy(out, solves)
	lower, upper, ok := OutlierBounds(Times(solves))
	if !ok {
		return out
	}
	for i := range out {
		t := out[i].TimeSeconds
		out[i].IsOutlier = t < lower || t > upper
	}
	return out
}

// CountOutliers counts flagged solves.
func CountOutliers(solves []model.Solve) int {
	count := 0
	for _, s := range solves {
		if s.IsOutlier {
			count++
		}
	}
	return count
}
