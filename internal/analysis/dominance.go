package analysis

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/KaramelBytes/trendloom-cli/internal/chart"
	"github.com/KaramelBytes/trendloom-cli/internal/dataset"
)

// DominanceFinding tracks home_workout minus gym_workout over time.
type DominanceFinding struct {
	Months []time.Time
	// Diff is home minus gym per month; NaN where either side is null.
	Diff []float64
	// HomePeak is the month home led by the widest margin.
	HomePeak     time.Time
	HomePeakDiff float64
	// GymPeak is the month gym led by the widest margin.
	GymPeak     time.Time
	GymPeakDiff float64
	Chart       string
}

// HomeVsGymDiff returns home_workout_worldwide - gym_workout_worldwide per record.
func HomeVsGymDiff(ts dataset.TimeSeries) []float64 {
	diff := make([]float64, len(ts))
	for i, rec := range ts {
		if math.IsNaN(rec.HomeWorkout) || math.IsNaN(rec.GymWorkout) {
			diff[i] = math.NaN()
			continue
		}
		diff[i] = rec.HomeWorkout - rec.GymWorkout
	}
	return diff
}

// DominanceShift computes the difference series and its extremes.
func DominanceShift(ts dataset.TimeSeries) (*DominanceFinding, error) {
	diff := HomeVsGymDiff(ts)
	hi, err := ArgMax(diff)
	if err != nil {
		return nil, fmt.Errorf("home_vs_gym_diff: %w", err)
	}
	lo, err := ArgMin(diff)
	if err != nil {
		return nil, fmt.Errorf("home_vs_gym_diff: %w", err)
	}
	return &DominanceFinding{
		Months:       ts.Months(),
		Diff:         diff,
		HomePeak:     ts[hi].Month,
		HomePeakDiff: diff[hi],
		GymPeak:      ts[lo].Month,
		GymPeakDiff:  diff[lo],
	}, nil
}

// Dominance charts the home-minus-gym difference and reports when home
// dominance peaked.
func (r *Runner) Dominance() (*DominanceFinding, error) {
	r.log.Info("--- 3. Analyzing dominance shift: home vs. gym ---")
	ts, err := r.loadTimeSeries()
	if err != nil {
		return nil, err
	}
	f, err := DominanceShift(ts)
	if err != nil {
		return nil, err
	}

	pts := points(f.Months, f.Diff)
	fig := chart.Figure{
		Title:  `Dominance Shift: "Home Workout" vs. "Gym Workout"`,
		XLabel: "Month",
		YLabel: "Search Interest Difference",
		Lines:  []chart.Line{{Label: `"Home" minus "Gym" Interest`, Points: pts, Color: chart.Blue}},
		Fills: []chart.SignFill{{
			Points:     pts,
			AboveLabel: "Home More Popular",
			BelowLabel: "Gym More Popular",
			Above:      chart.GreenShade,
			Below:      chart.OrangeShade,
		}},
		ZeroLine: true,
	}
	if f.Chart, err = r.save(fig, "3_home_vs_gym_dominance.png"); err != nil {
		return nil, err
	}
	r.log.Info(fmt.Sprintf("Finding: The dominance of 'Home Workout' peaked in %s", f.HomePeak.Format("January 2006")),
		slog.Float64("difference", f.HomePeakDiff))
	r.log.Debug(fmt.Sprintf("Gym led by the widest margin in %s", f.GymPeak.Format("January 2006")),
		slog.Float64("difference", f.GymPeakDiff))
	return f, nil
}
