// Package filter selects the active subset of solves for a dashboard view.
package filter

import (
	"strings"
	"time"

	"github.com/verte-zerg/cubelog/internal/model"
	"github.com/verte-zerg/cubelog/internal/stats"
)

const isoDate = "2006-01-02"

var dateLayouts = []string{
	isoDate,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"Jan 2, 2006",
	"2 Jan 2006",
}

// All returns the filter that matches every solve.
func All() model.Filter {
	return model.Filter{CubeType: model.FilterAll, SessionID: model.FilterAll}
}

// IsAll reports whether f leaves every field unconstrained.
func IsAll(f model.Filter) bool {
	return strings.TrimSpace(f.StartDate) == "" &&
		strings.TrimSpace(f.EndDate) == "" &&
		matchesAny(f.CubeType) &&
		matchesAny(f.SessionID)
}

// ParseDate reads a date in any of the accepted layouts and truncates it to
// the calendar day.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// Apply returns the solves matching f, in their original order. Unparseable
// date bounds and record dates never exclude a solve.
func Apply(solves []model.Solve, f model.Filter) []model.Solve {
	start, hasStart := ParseDate(f.StartDate)
	end, hasEnd := ParseDate(f.EndDate)
	out := make([]model.Solve, 0, len(solves))
	for _, s := range solves {
		if !matchesAny(f.CubeType) && s.CubeType != f.CubeType {
			continue
		}
		if !matchesAny(f.SessionID) && s.SessionID != f.SessionID {
			continue
		}
		if hasStart || hasEnd {
			if day, ok := ParseDate(s.Date); ok {
				if hasStart && day.Before(start) {
					continue
				}
				if hasEnd && day.After(end) {
					continue
				}
			}
		}
		out = append(out, s)
	}
	return out
}

// Choices lists the distinct cube types in first-seen order and the distinct
// sessions in session-number order.
func Choices(solves []model.Solve) model.Choices {
	seen := make(map[string]struct{})
	cubes := make([]string, 0)
	sessions := make([]string, 0, len(solves))
	for _, s := range solves {
		if _, ok := seen[s.CubeType]; !ok {
			seen[s.CubeType] = struct{}{}
			cubes = append(cubes, s.CubeType)
		}
		sessions = append(sessions, s.SessionID)
	}
	return model.Choices{CubeTypes: cubes, SessionIDs: stats.OrderSessions(sessions)}
}

// DateRange returns the earliest and latest parseable solve dates as YYYY-MM-DD.
func DateRange(solves []model.Solve) (string, string, bool) {
	var first, last time.Time
	found := false
	for _, s := range solves {
		day, ok := ParseDate(s.Date)
		if !ok {
			continue
		}
		if !found || day.Before(first) {
			first = day
		}
		if !found || day.After(last) {
			last = day
		}
		found = true
	}
	if !found {
		return "", "", false
	}
	return first.Format(isoDate), last.Format(isoDate), true
}

func matchesAny(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, model.FilterAll)
}
