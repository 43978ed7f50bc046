package analysis

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/KaramelBytes/trendloom-cli/internal/chart"
	"github.com/KaramelBytes/trendloom-cli/internal/dataset"
)

// KeywordColumns are the competing keyword series, in tie-break order.
var KeywordColumns = []string{dataset.ColHomeWorkout, dataset.ColGymWorkout, dataset.ColHomeGym}

// KeywordFinding reports which keyword led inside the highlight window and in
// the most recent month.
type KeywordFinding struct {
	WindowStart  time.Time
	WindowEnd    time.Time
	WindowLeader string
	WindowPeak   float64
	LatestMonth  time.Time
	LatestLeader string
	LatestValue  float64
	Chart        string
}

// KeywordLeaders compares the keyword columns inside [start, end] and in the
// last record of ts.
func KeywordLeaders(ts dataset.TimeSeries, start, end time.Time) (*KeywordFinding, error) {
	if len(ts) == 0 {
		return nil, dataset.ErrNoValues
	}
	f := &KeywordFinding{WindowStart: start, WindowEnd: end}

	peaks := make([]float64, len(KeywordColumns))
	for c, col := range KeywordColumns {
		peaks[c] = math.NaN()
		vals := ts.Values(col)
		for i, rec := range ts {
			if rec.Month.Before(start) || rec.Month.After(end) || math.IsNaN(vals[i]) {
				continue
			}
			if math.IsNaN(peaks[c]) || vals[i] > peaks[c] {
				peaks[c] = vals[i]
			}
		}
	}
	c, err := ArgMax(peaks)
	if err != nil {
		return nil, fmt.Errorf("window %s to %s: %w", dataset.FormatMonth(start), dataset.FormatMonth(end), err)
	}
	f.WindowLeader, f.WindowPeak = KeywordColumns[c], peaks[c]

	last := len(ts) - 1
	latest := make([]float64, len(KeywordColumns))
	for c, col := range KeywordColumns {
		latest[c] = ts.Values(col)[last]
	}
	c, err = ArgMax(latest)
	if err != nil {
		return nil, fmt.Errorf("latest month %s: %w", dataset.FormatMonth(ts[last].Month), err)
	}
	f.LatestMonth = ts[last].Month
	f.LatestLeader, f.LatestValue = KeywordColumns[c], latest[c]
	return f, nil
}

// Keywords charts home versus gym workout interest with the highlight window
// shaded and reports the leading keywords.
func (r *Runner) Keywords() (*KeywordFinding, error) {
	r.log.Info("--- 2. Analyzing specific keyword trends (home vs. gym) ---")
	ts, err := r.loadTimeSeries()
	if err != nil {
		return nil, err
	}
	f, err := KeywordLeaders(ts, r.opt.HighlightStart, r.opt.HighlightEnd)
	if err != nil {
		return nil, err
	}

	months := ts.Months()
	fig := chart.Figure{
		Title:  "Search Interest: Home Workout vs. Gym Workout",
		XLabel: "Month",
		YLabel: "Relative Search Interest",
		Lines: []chart.Line{
			{Label: "Home Workout", Points: points(months, ts.Values(dataset.ColHomeWorkout)), Color: chart.Blue},
			{Label: "Gym Workout", Points: points(months, ts.Values(dataset.ColGymWorkout)), Color: chart.Orange},
		},
		Bands: []chart.Band{
			{Label: "COVID-19 Peak Period", From: r.opt.HighlightStart, To: r.opt.HighlightEnd, Color: chart.RedShade},
		},
		LegendTopLeft: true,
	}
	if f.Chart, err = r.save(fig, "2_keyword_trends.png"); err != nil {
		return nil, err
	}
	r.log.Info(fmt.Sprintf("Finding: '%s' had the highest interest between %s and %s",
		f.WindowLeader, dataset.FormatMonth(f.WindowStart), dataset.FormatMonth(f.WindowEnd)),
		slog.Float64("value", f.WindowPeak))
	r.log.Info(fmt.Sprintf("Finding: '%s' leads in the most recent month, %s",
		f.LatestLeader, f.LatestMonth.Format("January 2006")),
		slog.Float64("value", f.LatestValue))
	return f, nil
}
