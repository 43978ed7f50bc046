package analysis

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/KaramelBytes/trendloom-cli/internal/chart"
	"github.com/KaramelBytes/trendloom-cli/internal/dataset"
)

// OverallFinding is the peak of overall workout interest.
type OverallFinding struct {
	PeakMonth time.Time
	PeakYear  int
	PeakValue float64
	Chart     string
}

// PeakOf finds the month of maximum workout_worldwide in ts.
func PeakOf(ts dataset.TimeSeries) (*OverallFinding, error) {
	i, err := ArgMax(ts.Values(dataset.ColWorkout))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dataset.ColWorkout, err)
	}
	return &OverallFinding{PeakMonth: ts[i].Month, PeakYear: ts[i].Month.Year(), PeakValue: ts[i].Workout}, nil
}

// Overall charts global workout interest and reports its peak year.
func (r *Runner) Overall() (*OverallFinding, error) {
	r.log.Info("--- 1. Analyzing overall workout trends ---")
	ts, err := r.loadTimeSeries()
	if err != nil {
		return nil, err
	}
	f, err := PeakOf(ts)
	if err != nil {
		return nil, err
	}

	fig := chart.Figure{
		Title:  `Global "Workout" Search Interest Trend`,
		XLabel: "Month",
		YLabel: "Relative Search Interest",
		Lines: []chart.Line{
			{Points: points(ts.Months(), ts.Values(dataset.ColWorkout)), Color: chart.Navy, Width: 1.5},
		},
	}
	if f.Chart, err = r.save(fig, "1_overall_trends.png"); err != nil {
		return nil, err
	}
	r.log.Info(fmt.Sprintf("Finding: The peak year for 'workout' searches was %d", f.PeakYear),
		slog.String("peak_month", dataset.FormatMonth(f.PeakMonth)),
		slog.Float64("peak_value", f.PeakValue))
	return f, nil
}
