package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/cubelog/internal/model"
)

const sparkChars = " .:-=+*#%@"

// DefaultWindow is the rolling average window used when none is given.
const DefaultWindow = 5

// DefaultWindows are the rolling average windows shown on dashboards.
var DefaultWindows = []int{5, 10, 20}

// Rolling is a trailing moving average series for one window size.
type Rolling struct {
	Window int
	Values []float64
}

// MovingAverage computes a rolling mean over the provided window size.
// Near the start the window shrinks to the values seen so far.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// RollingAverage computes the trailing mean solve time at every position.
func RollingAverage(solves []model.Solve, window int) []float64 {
	if window <= 0 {
		window = DefaultWindow
	}
	return MovingAverage(Times(solves), window)
}

// RollingSeries computes one rolling average per window, defaulting to DefaultWindows.
func RollingSeries(solves []model.Solve, windows ...int) []Rolling {
	if len(windows) == 0 {
		windows = DefaultWindows
	}
	out := make([]Rolling, 0, len(windows))
	for _, w := range windows {
		if w <= 0 {
			w = DefaultWindow
		}
		out = append(out, Rolling{Window: w, Values: RollingAverage(solves, w)})
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	var b strings.Builder
	for _, v := range values {
		b.WriteByte(sparkChar(v, minVal, maxVal))
	}
	return b.String()
}

func sparkChar(v, minVal, maxVal float64) byte {
	if math.Abs(maxVal-minVal) < 1e-9 {
		return sparkChars[len(sparkChars)/2]
	}
	pos := (v - minVal) / (maxVal - minVal)
	idx := int(math.Round(pos * float64(len(sparkChars)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sparkChars) {
		idx = len(sparkChars) - 1
	}
	return sparkChars[idx]
}
