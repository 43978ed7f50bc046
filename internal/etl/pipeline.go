// Package etl merges the raw search-interest sources into the processed
// tables read by the analysis routines.
package etl

import (
	"errors"
	"log/slog"

	"github.com/KaramelBytes/trendloom-cli/internal/dataset"
)

// Sources names the four raw input files.
type Sources struct {
	Workout     string
	Keywords    string
	WorkoutGeo  string
	KeywordsGeo string
}

// Config fixes the inputs and outputs of one pipeline run.
type Config struct {
	Sources       Sources
	TimeSeriesOut string
	GeoOut        string
	// Aliases declares accepted spellings of the join key columns.
	// DefaultAliases is used when nil.
	Aliases dataset.Aliases
}

// Result summarizes a completed run.
type Result struct {
	TimeSeriesPath string
	GeoPath        string
	TimeSeriesRows int
	GeoRows        int
	// DroppedDuplicates counts source rows whose key repeated within the same source.
	DroppedDuplicates int
}

// Pipeline runs extract, transform and load over the configured files.
type Pipeline struct {
	cfg Config
	log *slog.Logger
}

// New returns a pipeline for cfg.
func New(cfg Config, logger *slog.Logger) *Pipeline {
	if cfg.Aliases == nil {
		cfg.Aliases = dataset.DefaultAliases()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, log: logger}
}

type rawTables struct {
	workout, keywords, workoutGeo, keywordsGeo *dataset.Table
}

// Run executes the pipeline. Outputs are written only after every source has
// been read, parsed and joined.
func (p *Pipeline) Run() (*Result, error) {
	p.log.Info("Starting data preparation")

	raw, err := p.extract()
	if err != nil {
		p.log.Error("Extraction failed", slog.String("error", err.Error()))
		return nil, err
	}
	p.log.Info("Extracted raw sources",
		slog.Int("workout_rows", raw.workout.Len()),
		slog.Int("keywords_rows", raw.keywords.Len()),
		slog.Int("workout_geo_rows", raw.workoutGeo.Len()),
		slog.Int("keywords_geo_rows", raw.keywordsGeo.Len()))

	ts, tsStats, err := p.mergeTimeSeries(raw.workout, raw.keywords)
	if err != nil {
		p.log.Error("Time-series transform failed", slog.String("error", err.Error()))
		return nil, err
	}
	p.log.Info("Merged time-series data", slog.Int("rows", ts.Len()))

	geo, geoStats, err := p.mergeGeo(raw.workoutGeo, raw.keywordsGeo)
	if err != nil {
		p.log.Error("Geographic transform failed", slog.String("error", err.Error()))
		return nil, err
	}
	p.log.Info("Merged geographical data", slog.Int("rows", geo.Len()))

	dropped := tsStats.LeftDuplicates + tsStats.RightDuplicates + geoStats.LeftDuplicates + geoStats.RightDuplicates
	if dropped > 0 {
		p.log.Warn("Dropped rows with repeated keys", slog.Int("rows", dropped))
	}

	if err := dataset.WriteCSV(p.cfg.TimeSeriesOut, ts); err != nil {
		p.log.Error("Failed to save time-series data", slog.String("error", err.Error()))
		return nil, err
	}
	p.log.Info("Clean time-series data saved", slog.String("path", p.cfg.TimeSeriesOut))
	if err := dataset.WriteCSV(p.cfg.GeoOut, geo); err != nil {
		p.log.Error("Failed to save geographical data", slog.String("error", err.Error()))
		return nil, err
	}
	p.log.Info("Clean geographical data saved", slog.String("path", p.cfg.GeoOut))
	p.log.Info("Data preparation complete")

	return &Result{
		TimeSeriesPath:    p.cfg.TimeSeriesOut,
		GeoPath:           p.cfg.GeoOut,
		TimeSeriesRows:    ts.Len(),
		GeoRows:           geo.Len(),
		DroppedDuplicates: dropped,
	}, nil
}

func (p *Pipeline) extract() (*rawTables, error) {
	var raw rawTables
	for _, src := range []struct {
		path string
		dst  **dataset.Table
	}{
		{p.cfg.Sources.Workout, &raw.workout},
		{p.cfg.Sources.Keywords, &raw.keywords},
		{p.cfg.Sources.WorkoutGeo, &raw.workoutGeo},
		{p.cfg.Sources.KeywordsGeo, &raw.keywordsGeo},
	} {
		t, err := dataset.Read(src.path)
		if err != nil {
			return nil, err
		}
		p.log.Debug("Loaded source", slog.String("path", src.path), slog.Int("rows", t.Len()), slog.Int("columns", len(t.Header)))
		*src.dst = t
	}
	return &raw, nil
}

func (p *Pipeline) mergeTimeSeries(workout, keywords *dataset.Table) (*dataset.Table, dataset.JoinStats, error) {
	for _, t := range []*dataset.Table{workout, keywords} {
		if err := t.Canonicalize(dataset.ColMonth, p.cfg.Aliases); err != nil {
			return nil, dataset.JoinStats{}, err
		}
		if err := t.MapColumn(dataset.ColMonth, canonicalMonth); err != nil {
			return nil, dataset.JoinStats{}, err
		}
	}
	return dataset.OuterJoin(workout, keywords, dataset.ColMonth)
}

func (p *Pipeline) mergeGeo(workoutGeo, keywordsGeo *dataset.Table) (*dataset.Table, dataset.JoinStats, error) {
	for _, t := range []*dataset.Table{workoutGeo, keywordsGeo} {
		if err := t.Canonicalize(dataset.ColCountry, p.cfg.Aliases); err != nil {
			return nil, dataset.JoinStats{}, err
		}
	}
	return dataset.OuterJoin(workoutGeo, keywordsGeo, dataset.ColCountry)
}

func canonicalMonth(s string) (string, error) {
	if s == "" {
		return "", errors.New("empty month")
	}
	m, err := dataset.ParseMonth(s)
	if err != nil {
		return "", err
	}
	return dataset.FormatMonth(m), nil
}
