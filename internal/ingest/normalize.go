package ingest

import (
	"strconv"
	"strings"

	"github.com/verte-zerg/cubelog/internal/model"
	"github.com/verte-zerg/cubelog/internal/solvetime"
)

// Recognized column headers.
const (
	ColDate           = "Date"
	ColCubeType       = "Cube Type"
	ColSolveNumber    = "Solve Number"
	ColTimeClock      = "Time (mm:ss)"
	ColTimeSeconds    = "Time (s)"
	ColSessionID      = "Session ID"
	ColSessionAverage = "Session Averages"
)

// Normalize converts raw rows into solves, preserving order. Rows without a
// usable time are dropped; the second return value counts them.
func Normalize(rows []Row) ([]model.Solve, int) {
	solves := make([]model.Solve, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		solve, ok := normalizeRow(row, i)
		if !ok {
			dropped++
			continue
		}
		solves = append(solves, solve)
	}
	return solves, dropped
}

func normalizeRow(row Row, index int) (model.Solve, bool) {
	seconds, ok := resolveTime(row)
	if !ok {
		return model.Solve{}, false
	}
	return model.Solve{
		Date:           field(row, ColDate, ""),
		CubeType:       field(row, ColCubeType, model.DefaultCubeType),
		SolveNumber:    solveNumber(row, index),
		TimeSeconds:    seconds,
		SessionID:      field(row, ColSessionID, model.DefaultSessionID),
		SessionAverage: sessionAverage(row),
	}, true
}

func resolveTime(row Row) (float64, bool) {
	if v, ok := solvetime.ParseTime(row[ColTimeSeconds]); ok {
		return v, true
	}
	return solvetime.ParseTime(row[ColTimeClock])
}

func field(row Row, name, fallback string) string {
	v := strings.TrimSpace(row[name])
	if v == "" {
		return fallback
	}
	return v
}

func solveNumber(row Row, index int) int {
	n, err := strconv.Atoi(strings.TrimSpace(row[ColSolveNumber]))
	if err != nil || n <= 0 {
		return index + 1
	}
	return n
}

func sessionAverage(row Row) *float64 {
	v, ok := solvetime.ParseTime(row[ColSessionAverage])
	if !ok {
		return nil
	}
	return &v
}
