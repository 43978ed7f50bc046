package dataset

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Time-series value columns.
const (
	ColWorkout     = "workout_worldwide"
	ColHomeWorkout = "home_workout_worldwide"
	ColGymWorkout  = "gym_workout_worldwide"
	ColHomeGym     = "home_gym_worldwide"
)

// Geographic value columns.
const (
	ColGeoWorkout     = "workout_2018_2023"
	ColGeoHomeWorkout = "home_workout_2018_2023"
	ColGeoGymWorkout  = "gym_workout_2018_2023"
	ColGeoHomeGym     = "home_gym_2018_2023"
)

// TimeSeriesRecord is one month of search interest. Null values are NaN.
type TimeSeriesRecord struct {
	Month       time.Time
	Workout     float64
	HomeWorkout float64
	GymWorkout  float64
	HomeGym     float64
}

// TimeSeries is ordered by Month ascending.
type TimeSeries []TimeSeriesRecord

// TimeSeriesTypes returns the column types of the processed time-series table.
func TimeSeriesTypes() map[string]series.Type {
	return map[string]series.Type{
		ColMonth:       series.String,
		ColWorkout:     series.Float,
		ColHomeWorkout: series.Float,
		ColGymWorkout:  series.Float,
		ColHomeGym:     series.Float,
	}
}

// TimeSeriesFromFrame converts a loaded frame into records sorted by month.
func TimeSeriesFromFrame(source string, df dataframe.DataFrame) (TimeSeries, error) {
	if err := requireColumns(source, df, ColMonth, ColWorkout, ColHomeWorkout, ColGymWorkout, ColHomeGym); err != nil {
		return nil, err
	}
	months := df.Col(ColMonth).Records()
	workout := df.Col(ColWorkout).Float()
	home := df.Col(ColHomeWorkout).Float()
	gym := df.Col(ColGymWorkout).Float()
	homeGym := df.Col(ColHomeGym).Float()

	ts := make(TimeSeries, len(months))
	for i, m := range months {
		t, err := ParseMonth(m)
		if err != nil {
			return nil, &DataFormatError{Source: source, Column: ColMonth, Row: i + 1, Value: m, Reason: err.Error()}
		}
		ts[i] = TimeSeriesRecord{Month: t, Workout: workout[i], HomeWorkout: home[i], GymWorkout: gym[i], HomeGym: homeGym[i]}
	}
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Month.Before(ts[j].Month) })
	return ts, nil
}

// Months returns the month of every record.
func (ts TimeSeries) Months() []time.Time {
	out := make([]time.Time, len(ts))
	for i, r := range ts {
		out[i] = r.Month
	}
	return out
}

// Values returns the named value column, or nil for an unknown name.
func (ts TimeSeries) Values(column string) []float64 {
	var pick func(TimeSeriesRecord) float64
	switch column {
	case ColWorkout:
		pick = func(r TimeSeriesRecord) float64 { return r.Workout }
	case ColHomeWorkout:
		pick = func(r TimeSeriesRecord) float64 { return r.HomeWorkout }
	case ColGymWorkout:
		pick = func(r TimeSeriesRecord) float64 { return r.GymWorkout }
	case ColHomeGym:
		pick = func(r TimeSeriesRecord) float64 { return r.HomeGym }
	default:
		return nil
	}
	out := make([]float64, len(ts))
	for i, r := range ts {
		out[i] = pick(r)
	}
	return out
}

// GeoRecord is the aggregate interest of one country. Null values are NaN.
type GeoRecord struct {
	Country     string
	Workout     float64
	HomeWorkout float64
	GymWorkout  float64
	HomeGym     float64
}

// Geo holds one record per country.
type Geo []GeoRecord

// GeoTypes returns the column types of the processed geographic table.
func GeoTypes() map[string]series.Type {
	return map[string]series.Type{
		ColCountry:        series.String,
		ColGeoWorkout:     series.Float,
		ColGeoHomeWorkout: series.Float,
		ColGeoGymWorkout:  series.Float,
		ColGeoHomeGym:     series.Float,
	}
}

// GeoFromFrame converts a loaded frame into records. The gym and home-gym
// columns are optional.
func GeoFromFrame(source string, df dataframe.DataFrame) (Geo, error) {
	if err := requireColumns(source, df, ColCountry, ColGeoWorkout, ColGeoHomeWorkout); err != nil {
		return nil, err
	}
	n := df.Nrow()
	countries := df.Col(ColCountry).Records()
	workout := df.Col(ColGeoWorkout).Float()
	home := df.Col(ColGeoHomeWorkout).Float()
	gym := optionalFloats(df, ColGeoGymWorkout, n)
	homeGym := optionalFloats(df, ColGeoHomeGym, n)

	geo := make(Geo, n)
	for i := 0; i < n; i++ {
		geo[i] = GeoRecord{Country: countries[i], Workout: workout[i], HomeWorkout: home[i], GymWorkout: gym[i], HomeGym: homeGym[i]}
	}
	return geo, nil
}

// Find returns the record for country, matched case-insensitively.
func (g Geo) Find(country string) (GeoRecord, bool) {
	for _, r := range g {
		if strings.EqualFold(strings.TrimSpace(r.Country), strings.TrimSpace(country)) {
			return r, true
		}
	}
	return GeoRecord{}, false
}

func optionalFloats(df dataframe.DataFrame, name string, n int) []float64 {
	if hasColumn(df, name) {
		return df.Col(name).Float()
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
