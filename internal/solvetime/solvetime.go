// Package solvetime parses and formats solve durations.
package solvetime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Placeholder is rendered in place of a missing or non-finite time.
const Placeholder = "--"

// ParseTime converts "m:ss.cc" or plain seconds into seconds.
// It reports false for empty input and anything that is not a usable duration.
func ParseTime(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if strings.Count(raw, ":") == 1 {
		minPart, secPart, _ := strings.Cut(raw, ":")
		minutes, err := strconv.Atoi(strings.TrimSpace(minPart))
		if err != nil || minutes < 0 {
			return 0, false
		}
		seconds, ok := parseSeconds(secPart)
		if !ok {
			return 0, false
		}
		return float64(minutes)*60 + seconds, true
	}
	return parseSeconds(raw)
}

// ParseValue accepts a numeric cell that already holds seconds.
func ParseValue(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

func parseSeconds(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return ParseValue(v)
}

// FormatTime renders seconds as "m:ss.cc". Non-finite values render as Placeholder.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return Placeholder
	}
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	cents := int64(math.Round(seconds * 100))
	minutes := cents / 6000
	rest := cents % 6000
	return fmt.Sprintf("%s%d:%02d.%02d", sign, minutes, rest/100, rest%100)
}

// FormatOptional renders a possibly absent time.
func FormatOptional(seconds *float64) string {
	if seconds == nil {
		return Placeholder
	}
	return FormatTime(*seconds)
}
