package analysis

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/trendloom-cli/internal/chart"
	"github.com/KaramelBytes/trendloom-cli/internal/dataset"
)

type fakeRenderer struct {
	paths []string
	figs  []chart.Figure
	err   error
}

func (f *fakeRenderer) Render(fig chart.Figure, path string) error {
	if f.err != nil {
		return f.err
	}
	f.paths = append(f.paths, filepath.Base(path))
	f.figs = append(f.figs, fig)
	return nil
}

func month(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }

const tsHeader = "month,workout_worldwide,home_workout_worldwide,gym_workout_worldwide,home_gym_worldwide\n"

func fixture(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	ts := tsHeader +
		"2019-12-01,40,10,60,5\n" +
		"2020-04-01,90,95,30,40\n" +
		"2020-06-01,70,70,50,20\n" +
		"2023-12-01,60,20,80,10\n"
	geo := "country,workout_2018_2023,home_workout_2018_2023\n" +
		"Malaysia,70,88\n" +
		"Philippines,95,90\n" +
		"Singapore,60,\n"
	opt := DefaultOptions()
	opt.TimeSeriesPath = filepath.Join(dir, "ts.csv")
	opt.GeoPath = filepath.Join(dir, "geo.csv")
	opt.ImagesDir = filepath.Join(dir, "images")
	require.NoError(t, os.WriteFile(opt.TimeSeriesPath, []byte(ts), 0o644))
	require.NoError(t, os.WriteFile(opt.GeoPath, []byte(geo), 0o644))
	return opt
}

func TestPeakOf(t *testing.T) {
	ts := dataset.TimeSeries{
		{Month: month(2020, time.January), Workout: 10},
		{Month: month(2020, time.June), Workout: 50},
		{Month: month(2020, time.December), Workout: 30},
	}
	f, err := PeakOf(ts)
	require.NoError(t, err)
	assert.Equal(t, 2020, f.PeakYear)
	assert.Equal(t, 50.0, f.PeakValue)
	assert.Equal(t, month(2020, time.June), f.PeakMonth)
}

func TestPeakOfAllNull(t *testing.T) {
	ts := dataset.TimeSeries{{Month: month(2020, time.January), Workout: math.NaN()}}
	_, err := PeakOf(ts)
	assert.ErrorIs(t, err, dataset.ErrNoValues)
}

func TestArgMaxTiesAndNaN(t *testing.T) {
	i, err := ArgMax([]float64{math.NaN(), 3, 7, 7})
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	i, err = ArgMin([]float64{4, math.NaN(), 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	_, err = ArgMax(nil)
	assert.ErrorIs(t, err, dataset.ErrNoValues)
}

func TestDominanceShift(t *testing.T) {
	ts := dataset.TimeSeries{
		{Month: month(2020, time.January), HomeWorkout: 80, GymWorkout: 20},
		{Month: month(2020, time.February), HomeWorkout: 20, GymWorkout: 80},
		{Month: month(2020, time.March), HomeWorkout: math.NaN(), GymWorkout: 10},
	}
	f, err := DominanceShift(ts)
	require.NoError(t, err)
	assert.Equal(t, []float64{60, -60}, f.Diff[:2])
	assert.True(t, math.IsNaN(f.Diff[2]))
	assert.Equal(t, month(2020, time.January), f.HomePeak)
	assert.Equal(t, month(2020, time.February), f.GymPeak)
	assert.Equal(t, "January 2020", f.HomePeak.Format("January 2006"))
}

func TestKeywordLeaders(t *testing.T) {
	ts := dataset.TimeSeries{
		{Month: month(2019, time.December), HomeWorkout: 10, GymWorkout: 99, HomeGym: 5},
		{Month: month(2020, time.April), HomeWorkout: 95, GymWorkout: 30, HomeGym: 40},
		{Month: month(2021, time.June), HomeWorkout: 50, GymWorkout: 50, HomeGym: 96},
		{Month: month(2023, time.December), HomeWorkout: 20, GymWorkout: 80, HomeGym: 80},
	}
	f, err := KeywordLeaders(ts, month(2020, time.March), month(2021, time.June))
	require.NoError(t, err)
	// The window is inclusive of its end month.
	assert.Equal(t, dataset.ColHomeGym, f.WindowLeader)
	assert.Equal(t, 96.0, f.WindowPeak)
	// Tie in the latest month resolves to the earlier declared column.
	assert.Equal(t, dataset.ColGymWorkout, f.LatestLeader)
	assert.Equal(t, month(2023, time.December), f.LatestMonth)
}

func TestKeywordLeadersEmptyWindow(t *testing.T) {
	ts := dataset.TimeSeries{{Month: month(2019, time.January), HomeWorkout: 1, GymWorkout: 2, HomeGym: 3}}
	_, err := KeywordLeaders(ts, month(2020, time.March), month(2021, time.June))
	assert.ErrorIs(t, err, dataset.ErrNoValues)
}

func TestTopCountry(t *testing.T) {
	geo := dataset.Geo{{Country: "A", Workout: 90}, {Country: "B", Workout: 95}}
	top, err := TopCountry(geo)
	require.NoError(t, err)
	assert.Equal(t, "B", top.Country)
}

func TestCompareCountries(t *testing.T) {
	geo := dataset.Geo{
		{Country: "Philippines", HomeWorkout: 80},
		{Country: "Malaysia", HomeWorkout: 80},
	}
	_, leader, err := CompareCountries(geo, [2]string{"Philippines", "Malaysia"})
	require.NoError(t, err)
	assert.Equal(t, "Philippines", leader.Country)

	_, _, err = CompareCountries(geo, [2]string{"Philippines", "Narnia"})
	var dfe *dataset.DataFormatError
	require.True(t, errors.As(err, &dfe))
	assert.Contains(t, dfe.Reason, "Narnia")
}

func TestRunAllOrder(t *testing.T) {
	opt := fixture(t)
	r := &fakeRenderer{}
	f, err := NewRunner(opt, r, nil, nil).Run(SelectAll)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"1_overall_trends.png",
		"2_keyword_trends.png",
		"3_home_vs_gym_dominance.png",
		"4_geo_home_workout.png",
	}, r.paths)
	assert.DirExists(t, opt.ImagesDir)

	assert.Equal(t, 2020, f.Overall.PeakYear)
	assert.Equal(t, dataset.ColHomeWorkout, f.Keywords.WindowLeader)
	assert.Equal(t, dataset.ColGymWorkout, f.Keywords.LatestLeader)
	assert.Equal(t, month(2020, time.April), f.Dominance.HomePeak)
	assert.Equal(t, "Philippines", f.Geo.TopCountry)
	assert.Equal(t, "Philippines", f.Geo.HomeLeader)

	require.Len(t, r.figs[1].Bands, 1)
	assert.Equal(t, "COVID-19 Peak Period", r.figs[1].Bands[0].Label)
	assert.True(t, r.figs[2].ZeroLine)
	require.Len(t, r.figs[3].Bars, 2)
}

func TestRunSingle(t *testing.T) {
	opt := fixture(t)
	r := &fakeRenderer{}
	f, err := NewRunner(opt, r, nil, nil).Run(SelectGeo)
	require.NoError(t, err)
	assert.Equal(t, []string{"4_geo_home_workout.png"}, r.paths)
	assert.Nil(t, f.Overall)
	assert.NotNil(t, f.Geo)
}

func TestRunMissingFile(t *testing.T) {
	opt := fixture(t)
	opt.TimeSeriesPath = filepath.Join(t.TempDir(), "absent.csv")
	r := &fakeRenderer{}
	_, err := NewRunner(opt, r, nil, nil).Run(SelectOverall)
	var missing *dataset.MissingFileError
	require.True(t, errors.As(err, &missing))
	assert.Empty(t, r.paths)
}

func TestRunRenderFailure(t *testing.T) {
	opt := fixture(t)
	_, err := NewRunner(opt, &fakeRenderer{err: errors.New("disk full")}, nil, nil).Run(SelectOverall)
	var we *dataset.WriteError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, "1_overall_trends.png", filepath.Base(we.Path))
}

func TestSelector(t *testing.T) {
	var s Selector
	assert.Equal(t, "all", s.String())
	require.NoError(t, s.Set("Keywords"))
	assert.Equal(t, SelectKeywords, s)
	assert.Error(t, s.Set("bogus"))
	assert.Equal(t, SelectKeywords, s)
	assert.Equal(t, []Selector{SelectOverall, SelectKeywords, SelectDominance, SelectGeo}, SelectAll.Routines())
}

func TestFindingsMarkdown(t *testing.T) {
	f := &Findings{
		Overall: &OverallFinding{PeakMonth: month(2020, time.April), PeakYear: 2020, PeakValue: 100, Chart: "images/1_overall_trends.png"},
		Geo: &GeoFinding{
			TopCountry: "Philippines",
			TopValue:   100,
			Compared:   [2]dataset.GeoRecord{{Country: "Philippines", HomeWorkout: 90}, {Country: "Malaysia", HomeWorkout: math.NaN()}},
			HomeLeader: "Philippines",
		},
	}
	md := f.Markdown()
	assert.Contains(t, md, "[FINDINGS] overall\n- Peak year for 'workout': 2020")
	assert.Contains(t, md, "- Chart: images/1_overall_trends.png")
	assert.Contains(t, md, "Malaysia n/a")
	assert.NotContains(t, md, "[FINDINGS] keywords")
}
