// Package analysis implements the search-interest analysis routines. Each
// routine loads a processed table from disk, checks its quality, derives a
// finding, renders one chart and logs the finding.
package analysis

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/KaramelBytes/trendloom-cli/internal/chart"
	"github.com/KaramelBytes/trendloom-cli/internal/dataset"
	"github.com/KaramelBytes/trendloom-cli/internal/quality"
	"github.com/KaramelBytes/trendloom-cli/internal/utils"
)

// Options controls where routines read and write and the fixed parameters
// of their findings.
type Options struct {
	TimeSeriesPath string
	GeoPath        string
	ImagesDir      string
	// HighlightStart and HighlightEnd bound the keyword-trend window, inclusive.
	HighlightStart time.Time
	HighlightEnd   time.Time
	// Countries are the two countries compared by the geo routine.
	Countries [2]string
}

// DefaultOptions returns the conventional paths and parameters.
func DefaultOptions() Options {
	return Options{
		TimeSeriesPath: filepath.Join("data", "processed", "processed_timeseries_data.csv"),
		GeoPath:        filepath.Join("data", "processed", "processed_geo_data.csv"),
		ImagesDir:      "images",
		HighlightStart: time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
		HighlightEnd:   time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC),
		Countries:      [2]string{"Philippines", "Malaysia"},
	}
}

// Runner executes routines against one set of options.
type Runner struct {
	opt    Options
	render chart.Renderer
	log    *slog.Logger
	out    io.Writer
}

// NewRunner returns a runner. Column summaries of loaded tables are printed
// to out; a nil out discards them.
func NewRunner(opt Options, render chart.Renderer, logger *slog.Logger, out io.Writer) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = io.Discard
	}
	return &Runner{opt: opt, render: render, log: logger, out: out}
}

// Run executes the routines named by sel in their fixed order. The first
// failure aborts the run.
func (r *Runner) Run(sel Selector) (*Findings, error) {
	if err := r.ensureImagesDir(); err != nil {
		return nil, err
	}
	r.log.Info("Starting analysis", slog.String("analysis", sel.String()))

	f := &Findings{}
	for _, routine := range sel.Routines() {
		var err error
		switch routine {
		case SelectOverall:
			f.Overall, err = r.Overall()
		case SelectKeywords:
			f.Keywords, err = r.Keywords()
		case SelectDominance:
			f.Dominance, err = r.Dominance()
		case SelectGeo:
			f.Geo, err = r.Geo()
		}
		if err != nil {
			r.log.Error("Analysis failed", slog.String("analysis", string(routine)), slog.String("error", err.Error()))
			return f, err
		}
	}
	r.log.Info("Analysis complete")
	return f, nil
}

func (r *Runner) ensureImagesDir() error {
	_, err := os.Stat(r.opt.ImagesDir)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat images dir: %w", err)
	}
	r.log.Info("Images directory not found, creating it", slog.String("path", r.opt.ImagesDir))
	if err := utils.EnsureDir(r.opt.ImagesDir); err != nil {
		return &dataset.WriteError{Path: r.opt.ImagesDir, Err: err}
	}
	return nil
}

func (r *Runner) loadTimeSeries() (dataset.TimeSeries, error) {
	path := r.opt.TimeSeriesPath
	df, err := dataset.LoadFrame(path, dataset.TimeSeriesTypes())
	if err != nil {
		r.log.Error("Failed to load data", slog.String("path", path), slog.String("error", err.Error()))
		return nil, err
	}
	r.log.Info("Successfully loaded data", slog.String("path", path))
	rep := quality.Inspect(filepath.Base(path), df)
	quality.Log(r.log, rep)
	quality.Render(r.out, rep)
	return dataset.TimeSeriesFromFrame(filepath.Base(path), df)
}

func (r *Runner) loadGeo() (dataset.Geo, error) {
	path := r.opt.GeoPath
	df, err := dataset.LoadFrame(path, dataset.GeoTypes())
	if err != nil {
		r.log.Error("Failed to load data", slog.String("path", path), slog.String("error", err.Error()))
		return nil, err
	}
	r.log.Info("Successfully loaded data", slog.String("path", path))
	rep := quality.Inspect(filepath.Base(path), df)
	quality.Log(r.log, rep)
	quality.Render(r.out, rep)
	return dataset.GeoFromFrame(filepath.Base(path), df)
}

// save renders fig into the images directory and returns the written path.
func (r *Runner) save(fig chart.Figure, name string) (string, error) {
	path := filepath.Join(r.opt.ImagesDir, name)
	if err := r.render.Render(fig, path); err != nil {
		return "", &dataset.WriteError{Path: path, Err: err}
	}
	r.log.Info("Plot saved", slog.String("path", path))
	return path, nil
}

func points(months []time.Time, vals []float64) []chart.Point {
	pts := make([]chart.Point, len(months))
	for i, m := range months {
		pts[i] = chart.Point{X: m, Y: vals[i]}
	}
	return pts
}
