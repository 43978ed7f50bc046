package analysis

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/KaramelBytes/trendloom-cli/internal/chart"
	"github.com/KaramelBytes/trendloom-cli/internal/dataset"
)

// GeoFinding reports the top workout country and the home-workout leader of
// the compared pair.
type GeoFinding struct {
	TopCountry string
	TopValue   float64
	Compared   [2]dataset.GeoRecord
	HomeLeader string
	Chart      string
}

// TopCountry returns the record with the highest workout_2018_2023.
func TopCountry(geo dataset.Geo) (dataset.GeoRecord, error) {
	vals := make([]float64, len(geo))
	for i, r := range geo {
		vals[i] = r.Workout
	}
	i, err := ArgMax(vals)
	if err != nil {
		return dataset.GeoRecord{}, fmt.Errorf("%s: %w", dataset.ColGeoWorkout, err)
	}
	return geo[i], nil
}

// CompareCountries looks up both countries and returns the one with the higher
// home_workout_2018_2023. The first country wins ties.
func CompareCountries(geo dataset.Geo, countries [2]string) ([2]dataset.GeoRecord, dataset.GeoRecord, error) {
	var pair [2]dataset.GeoRecord
	for i, name := range countries {
		rec, ok := geo.Find(name)
		if !ok {
			return pair, dataset.GeoRecord{}, &dataset.DataFormatError{Source: "geo", Column: dataset.ColCountry, Reason: fmt.Sprintf("country %q not found", name)}
		}
		pair[i] = rec
	}
	i, err := ArgMax([]float64{pair[0].HomeWorkout, pair[1].HomeWorkout})
	if err != nil {
		return pair, dataset.GeoRecord{}, fmt.Errorf("%s: %w", dataset.ColGeoHomeWorkout, err)
	}
	return pair, pair[i], nil
}

// GeoInsights computes the geographic finding.
func GeoInsights(geo dataset.Geo, countries [2]string) (*GeoFinding, error) {
	top, err := TopCountry(geo)
	if err != nil {
		return nil, err
	}
	pair, leader, err := CompareCountries(geo, countries)
	if err != nil {
		return nil, err
	}
	return &GeoFinding{TopCountry: top.Country, TopValue: top.Workout, Compared: pair, HomeLeader: leader.Country}, nil
}

// Geo reports the top workout country and charts the compared pair's
// home-workout interest.
func (r *Runner) Geo() (*GeoFinding, error) {
	r.log.Info("--- 4. Analyzing geographic interest ---")
	geo, err := r.loadGeo()
	if err != nil {
		return nil, err
	}
	f, err := GeoInsights(geo, r.opt.Countries)
	if err != nil {
		return nil, err
	}

	fig := chart.Figure{
		Title:  fmt.Sprintf("Home Workout Interest: %s vs. %s", f.Compared[0].Country, f.Compared[1].Country),
		XLabel: "Country",
		YLabel: "Relative Search Interest (2018-2023)",
		Bars: []chart.Bar{
			{Label: f.Compared[0].Country, Value: f.Compared[0].HomeWorkout},
			{Label: f.Compared[1].Country, Value: f.Compared[1].HomeWorkout},
		},
	}
	if f.Chart, err = r.save(fig, "4_geo_home_workout.png"); err != nil {
		return nil, err
	}
	r.log.Info(fmt.Sprintf("Finding: %s has the highest interest in 'workout'", f.TopCountry),
		slog.Float64("value", f.TopValue))
	r.log.Info(fmt.Sprintf("Finding: %s shows more interest in home workouts than %s", f.HomeLeader, other(f)),
		slog.Float64(f.Compared[0].Country, f.Compared[0].HomeWorkout),
		slog.Float64(f.Compared[1].Country, f.Compared[1].HomeWorkout))
	return f, nil
}

func other(f *GeoFinding) string {
	if f.HomeLeader == f.Compared[0].Country {
		return f.Compared[1].Country
	}
	return f.Compared[0].Country
}

func fmtValue(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", v)
}
