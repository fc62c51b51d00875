package stats

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/verte-zerg/cubelog/internal/model"
)

// DefaultHistogramBins is the bin count used for time distributions.
const DefaultHistogramBins = 20

// EarlyRecentFraction is the share of solves compared at each end of a view.
const EarlyRecentFraction = 0.3

var sessionNumberRe = regexp.MustCompile(`\d+`)

// SessionNumber extracts the first integer embedded in a session label.
func SessionNumber(label string) (int, bool) {
	match := sessionNumberRe.FindString(label)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

// OrderSessions returns the distinct labels ordered by their embedded number,
// so "Session 2" sorts before "Session 10". Labels without a number follow.
func OrderSessions(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ni, oki := SessionNumber(out[i])
		nj, okj := SessionNumber(out[j])
		switch {
		case oki && okj && ni != nj:
			return ni < nj
		case oki != okj:
			return oki
		default:
			return out[i] < out[j]
		}
	})
	return out
}

func sessionLabels(solves []model.Solve) []string {
	labels := make([]string, len(solves))
	for i, s := range solves {
		labels[i] = s.SessionID
	}
	return OrderSessions(labels)
}

// SessionGroups groups solve times by session, in session order.
func SessionGroups(solves []model.Solve) []model.SessionGroup {
	order := sessionLabels(solves)
	index := make(map[string]int, len(order))
	groups := make([]model.SessionGroup, len(order))
	for i, id := range order {
		index[id] = i
		groups[i].SessionID = id
	}
	for _, s := range solves {
		g := &groups[index[s.SessionID]]
		g.Times = append(g.Times, s.TimeSeconds)
		if s.IsOutlier {
			g.Outliers++
		}
	}
	return groups
}

// BuildHeatmap lays solves out by session and solve number. Columns are the
// distinct solve numbers present, ascending. When several solves share a cell
// the first one wins.
func BuildHeatmap(solves []model.Solve) model.Heatmap {
	if len(solves) == 0 {
		return model.Heatmap{}
	}
	sessions := sessionLabels(solves)
	numbers := make([]int, 0, len(solves))
	seen := make(map[int]struct{}, len(solves))
	for _, s := range solves {
		if s.SolveNumber < 1 {
			continue
		}
		if _, ok := seen[s.SolveNumber]; ok {
			continue
		}
		seen[s.SolveNumber] = struct{}{}
		numbers = append(numbers, s.SolveNumber)
	}
	sort.Ints(numbers)
	col := make(map[int]int, len(numbers))
	for j, n := range numbers {
		col[n] = j
	}
	row := make(map[string]int, len(sessions))
	cells := make([][]*float64, len(sessions))
	for i, id := range sessions {
		row[id] = i
		cells[i] = make([]*float64, len(numbers))
	}
	for _, s := range solves {
		j, ok := col[s.SolveNumber]
		if !ok {
			continue
		}
		cell := &cells[row[s.SessionID]][j]
		if *cell != nil {
			continue
		}
		v := s.TimeSeconds
		*cell = &v
	}
	return model.Heatmap{SessionIDs: sessions, SolveNumbers: numbers, Cells: cells}
}

// Histogram counts values into equal-width bins spanning their range.
func Histogram(values []float64, bins int) []model.HistogramBin {
	if len(values) == 0 {
		return nil
	}
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if maxVal-minVal < 1e-9 {
		return []model.HistogramBin{{Lower: minVal, Upper: maxVal, Count: len(values)}}
	}
	width := (maxVal - minVal) / float64(bins)
	out := make([]model.HistogramBin, bins)
	for i := range out {
		out[i].Lower = minVal + float64(i)*width
		out[i].Upper = minVal + float64(i+1)*width
	}
	out[bins-1].Upper = maxVal
	for _, v := range values {
		idx := int((v - minVal) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out
}

// CompareEarlyRecent compares the first and last 30% of solves. It reports
// false when that share rounds down to zero solves.
func CompareEarlyRecent(solves []model.Solve) (model.Change, bool) {
	window := int(float64(len(solves)) * EarlyRecentFraction)
	if window == 0 {
		return model.Change{}, false
	}
	early, ok := Summarize(solves[:window])
	if !ok {
		return model.Change{}, false
	}
	recent, ok := Summarize(solves[len(solves)-window:])
	if !ok {
		return model.Change{}, false
	}
	return model.Change{
		AveragePct:       (early.Average - recent.Average) / early.Average * 100,
		CoefficientDelta: recent.Coefficient - early.Coefficient,
		Window:           window,
	}, true
}
