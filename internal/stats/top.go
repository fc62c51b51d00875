package stats

import (
	"sort"

	"github.com/verte-zerg/cubelog/internal/model"
)

// DefaultTopSolves is the size of the personal-best list.
const DefaultTopSolves = 5

// FastestSolves returns the n fastest solves, ties kept in log order.
func FastestSolves(solves []model.Solve, n int) []model.Solve {
	if n <= 0 || len(solves) == 0 {
		return nil
	}
	items := make([]model.Solve, len(solves))
	copy(items, solves)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TimeSeconds < items[j].TimeSeconds
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
