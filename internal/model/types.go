// Package model defines shared data structures.
package model

// Default labels applied when a logged solve leaves the column empty.
const (
	DefaultCubeType  = "3×3"
	DefaultSessionID = "Session 1"
)

// FilterAll matches every cube type or session.
const FilterAll = "all"

// Solve is one timed solve after normalization.
type Solve struct {
	Date           string
	CubeType       string
	SolveNumber    int
	TimeSeconds    float64
	SessionID      string
	SessionAverage *float64
	IsOutlier      bool
}

// Summary holds descriptive statistics over a set of solves.
type Summary struct {
	Best        float64
	Worst       float64
	Average     float64
	Median      float64
	StdDev      float64
	Coefficient float64
	Total       int
}

// Filter selects the active view. Empty dates are unset; empty or "all"
// cube type and session match everything.
type Filter struct {
	StartDate string
	EndDate   string
	CubeType  string
	SessionID string
}

// Choices lists the distinct filter values present in a data set.
type Choices struct {
	CubeTypes  []string
	SessionIDs []string
}

// InsightCategory names the kind of observation an insight makes.
type InsightCategory string

// Insight categories, in the order they are generated.
const (
	InsightNoData      InsightCategory = "no-data"
	InsightPerformance InsightCategory = "performance"
	InsightConsistency InsightCategory = "consistency"
	InsightTrend       InsightCategory = "trend"
	InsightPeak        InsightCategory = "peak"
	InsightVolume      InsightCategory = "volume"
)

// Insight is a categorized natural-language observation.
type Insight struct {
	Category InsightCategory
	Title    string
	Message  string
	Value    float64
}

// SessionGroup holds the solve times of one session for distribution display.
type SessionGroup struct {
	SessionID string
	Times     []float64
	Outliers  int
}

// Heatmap is a sparse session by solve-number matrix. SolveNumbers lists only
// the numbers present, ascending. Cells[i][j] holds the time of SessionIDs[i]
// at solve number SolveNumbers[j], or nil.
type Heatmap struct {
	SessionIDs   []string
	SolveNumbers []int
	Cells        [][]*float64
}

// HistogramBin counts solves whose time falls in [Lower, Upper).
// The last bin also includes Upper.
type HistogramBin struct {
	Lower float64
	Upper float64
	Count int
}

// Change compares the earliest and most recent solves of a view.
type Change struct {
	// AveragePct is positive when recent solves are faster.
	AveragePct float64
	// CoefficientDelta is recent minus early coefficient of variation, in points.
	CoefficientDelta float64
	Window           int
}
