package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/verte-zerg/cubelog/internal/model"
	"github.com/verte-zerg/cubelog/internal/solvetime"
)

// Export is the JSON shape of a view. Non-finite numbers become null.
type Export struct {
	Label        string          `json:"label"`
	Filter       ExportFilter    `json:"filter"`
	Total        int             `json:"total"`
	OutlierCount int             `json:"outlier_count"`
	Summary      *ExportSummary  `json:"summary"`
	Change       *ExportChange   `json:"change"`
	Rolling      []ExportRolling `json:"rolling"`
	Sessions     []ExportSession `json:"sessions"`
	Histogram    []ExportBin     `json:"histogram"`
	Heatmap      ExportHeatmap   `json:"heatmap"`
	Fastest      []ExportSolve   `json:"fastest"`
	Insights     []ExportInsight `json:"insights"`
	Solves       []ExportSolve   `json:"solves"`
}

// ExportFilter mirrors model.Filter.
type ExportFilter struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	CubeType  string `json:"cube_type,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// ExportSummary mirrors model.Summary with formatted times alongside.
type ExportSummary struct {
	Best        *float64 `json:"best"`
	Worst       *float64 `json:"worst"`
	Average     *float64 `json:"average"`
	Median      *float64 `json:"median"`
	StdDev      *float64 `json:"std_dev"`
	Coefficient *float64 `json:"coefficient"`
	Total       int      `json:"total"`
	BestText    string   `json:"best_text"`
	AverageText string   `json:"average_text"`
	MedianText  string   `json:"median_text"`
	WorstText   string   `json:"worst_text"`
}

// ExportChange mirrors model.Change.
type ExportChange struct {
	AveragePct       *float64 `json:"average_pct"`
	CoefficientDelta *float64 `json:"coefficient_delta"`
	Window           int      `json:"window"`
}

// ExportRolling is one rolling average series.
type ExportRolling struct {
	Window int        `json:"window"`
	Values []*float64 `json:"values"`
}

// ExportSession is one session's times.
type ExportSession struct {
	SessionID string     `json:"session_id"`
	Times     []*float64 `json:"times"`
	Outliers  int        `json:"outliers"`
}

// ExportBin is one histogram bin.
type ExportBin struct {
	Lower *float64 `json:"lower"`
	Upper *float64 `json:"upper"`
	Count int      `json:"count"`
}

// ExportHeatmap is the session by solve-number matrix; missing cells are null.
type ExportHeatmap struct {
	SessionIDs   []string     `json:"session_ids"`
	SolveNumbers []int        `json:"solve_numbers"`
	Cells        [][]*float64 `json:"cells"`
}

// ExportSolve is one solve.
type ExportSolve struct {
	Date               string   `json:"date"`
	CubeType           string   `json:"cube_type"`
	SolveNumber        int      `json:"solve_number"`
	TimeSeconds        *float64 `json:"time_seconds"`
	Time               string   `json:"time"`
	SessionID          string   `json:"session_id"`
	SessionAverage     *float64 `json:"session_average"`
	SessionAverageText string   `json:"session_average_text"`
	IsOutlier          bool     `json:"is_outlier"`
}

// ExportInsight is one insight.
type ExportInsight struct {
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Value    *float64 `json:"value"`
}

// Export converts the view to its JSON shape.
func (v View) Export() Export {
	out := Export{
		Label: v.Label(),
		Filter: ExportFilter{
			StartDate: v.Filter.StartDate,
			EndDate:   v.Filter.EndDate,
			CubeType:  v.Filter.CubeType,
			SessionID: v.Filter.SessionID,
		},
		Total:        len(v.Solves),
		OutlierCount: v.OutlierCount,
		Rolling:      make([]ExportRolling, 0, len(v.Rolling)),
		Sessions:     make([]ExportSession, 0, len(v.Sessions)),
		Histogram:    make([]ExportBin, 0, len(v.Histogram)),
		Fastest:      exportSolves(v.Fastest),
		Insights:     make([]ExportInsight, 0, len(v.Insights)),
		Solves:       exportSolves(v.Solves),
		Heatmap: ExportHeatmap{
			SessionIDs:   nonNilStrings(v.Heatmap.SessionIDs),
			SolveNumbers: v.Heatmap.SolveNumbers,
			Cells:        make([][]*float64, 0, len(v.Heatmap.Cells)),
		},
	}
	if out.Heatmap.SolveNumbers == nil {
		out.Heatmap.SolveNumbers = []int{}
	}
	if s := v.Summary; s != nil {
		out.Summary = &ExportSummary{
			Best:        finite(s.Best),
			Worst:       finite(s.Worst),
			Average:     finite(s.Average),
			Median:      finite(s.Median),
			StdDev:      finite(s.StdDev),
			Coefficient: finite(s.Coefficient),
			Total:       s.Total,
			BestText:    solvetime.FormatTime(s.Best),
			AverageText: solvetime.FormatTime(s.Average),
			MedianText:  solvetime.FormatTime(s.Median),
			WorstText:   solvetime.FormatTime(s.Worst),
		}
	}
	if c := v.Change; c != nil {
		out.Change = &ExportChange{
			AveragePct:       finite(c.AveragePct),
			CoefficientDelta: finite(c.CoefficientDelta),
			Window:           c.Window,
		}
	}
	for _, r := range v.Rolling {
		out.Rolling = append(out.Rolling, ExportRolling{Window: r.Window, Values: finiteSlice(r.Values)})
	}
	for _, g := range v.Sessions {
		out.Sessions = append(out.Sessions, ExportSession{SessionID: g.SessionID, Times: finiteSlice(g.Times), Outliers: g.Outliers})
	}
	for _, b := range v.Histogram {
		out.Histogram = append(out.Histogram, ExportBin{Lower: finite(b.Lower), Upper: finite(b.Upper), Count: b.Count})
	}
	for _, row := range v.Heatmap.Cells {
		cells := make([]*float64, len(row))
		for i, c := range row {
			if c != nil {
				cells[i] = finite(*c)
			}
		}
		out.Heatmap.Cells = append(out.Heatmap.Cells, cells)
	}
	for _, in := range v.Insights {
		out.Insights = append(out.Insights, ExportInsight{
			Category: string(in.Category),
			Title:    in.Title,
			Message:  in.Message,
			Value:    finite(in.Value),
		})
	}
	return out
}

// WriteJSON writes the view export as indented JSON.
func (v View) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v.Export()); err != nil {
		return fmt.Errorf("failed to encode view: %w", err)
	}
	return nil
}

func exportSolves(solves []model.Solve) []ExportSolve {
	out := make([]ExportSolve, 0, len(solves))
	for _, s := range solves {
		var avg *float64
		if s.SessionAverage != nil {
			avg = finite(*s.SessionAverage)
		}
		out = append(out, ExportSolve{
			Date:               s.Date,
			CubeType:           s.CubeType,
			SolveNumber:        s.SolveNumber,
			TimeSeconds:        finite(s.TimeSeconds),
			Time:               solvetime.FormatTime(s.TimeSeconds),
			SessionID:          s.SessionID,
			SessionAverage:     avg,
			SessionAverageText: solvetime.FormatOptional(s.SessionAverage),
			IsOutlier:          s.IsOutlier,
		})
	}
	return out
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func finiteSlice(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		out[i] = finite(v)
	}
	return out
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
