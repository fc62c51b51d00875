// Package dashboard derives every dashboard view from a loaded practice log.
package dashboard

import (
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/cubelog/internal/filter"
	"github.com/verte-zerg/cubelog/internal/model"
	"github.com/verte-zerg/cubelog/internal/stats"
)

// View is everything the dashboard shows for one filter.
type View struct {
	Filter       model.Filter
	Solves       []model.Solve
	Summary      *model.Summary
	Change       *model.Change
	Rolling      []stats.Rolling
	Sessions     []model.SessionGroup
	Heatmap      model.Heatmap
	Histogram    []model.HistogramBin
	Fastest      []model.Solve
	Insights     []model.Insight
	OutlierCount int
	Filtered     bool
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithWindows sets the rolling average windows. Non-positive windows are ignored.
func WithWindows(windows ...int) Option {
	return func(d *Dashboard) {
		out := make([]int, 0, len(windows))
		for _, w := range windows {
			if w > 0 {
				out = append(out, w)
			}
		}
		if len(out) > 0 {
			d.windows = out
		}
	}
}

// WithHistogramBins sets the histogram bin count.
func WithHistogramBins(bins int) Option {
	return func(d *Dashboard) {
		if bins > 0 {
			d.bins = bins
		}
	}
}

// Dashboard holds the outlier-annotated log and the current view.
type Dashboard struct {
	all     []model.Solve
	choices model.Choices
	windows []int
	bins    int
	current View
}

// New annotates outliers across the whole log once and computes the
// unfiltered view.
func New(solves []model.Solve, opts ...Option) *Dashboard {
	d := &Dashboard{
		windows: append([]int(nil), stats.DefaultWindows...),
		bins:    stats.DefaultHistogramBins,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.all = stats.DetectOutliers(solves)
	d.choices = filter.Choices(d.all)
	log.Debug().
		Int("solves", len(d.all)).
		Int("outliers", stats.CountOutliers(d.all)).
		Int("cube_types", len(d.choices.CubeTypes)).
		Int("sessions", len(d.choices.SessionIDs)).
		Msg("dashboard loaded")
	d.current = d.build(filter.All())
	return d
}

// Apply recomputes every derived value for f and makes it the current view.
func (d *Dashboard) Apply(f model.Filter) View {
	d.current = d.build(f)
	log.Debug().
		Str("from", f.StartDate).
		Str("to", f.EndDate).
		Str("cube", f.CubeType).
		Str("session", f.SessionID).
		Int("solves", len(d.current.Solves)).
		Msg("filter applied")
	return d.current
}

// Current returns the most recently computed view.
func (d *Dashboard) Current() View {
	return d.current
}

// All returns a copy of the full outlier-annotated log.
func (d *Dashboard) All() []model.Solve {
	return slices.Clone(d.all)
}

// Choices lists the cube types and sessions available for filtering.
func (d *Dashboard) Choices() model.Choices {
	return d.choices
}

// DateRange returns the earliest and latest solve dates in the log.
func (d *Dashboard) DateRange() (string, string, bool) {
	return filter.DateRange(d.all)
}

// Windows returns the rolling average windows in use.
func (d *Dashboard) Windows() []int {
	return d.windows
}

func (d *Dashboard) build(f model.Filter) View {
	active := filter.Apply(d.all, f)
	v := View{
		Filter:       f,
		Solves:       active,
		Rolling:      stats.RollingSeries(active, d.windows...),
		Sessions:     stats.SessionGroups(active),
		Heatmap:      stats.BuildHeatmap(active),
		Histogram:    stats.Histogram(stats.Times(active), d.bins),
		Fastest:      stats.FastestSolves(active, stats.DefaultTopSolves),
		Insights:     stats.GenerateInsights(active),
		OutlierCount: stats.CountOutliers(active),
		Filtered:     !filter.IsAll(f),
	}
	if summary, ok := stats.Summarize(active); ok {
		v.Summary = &summary
	}
	if change, ok := stats.CompareEarlyRecent(active); ok {
		v.Change = &change
	}
	return v
}

// Label describes whether the view covers the whole log.
func (v View) Label() string {
	if v.Filtered {
		return "Filtered view"
	}
	return "All data"
}
