package chart

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/trendloom-cli/internal/utils"
)

// PlotRenderer draws figures with gonum/plot. The image format follows the
// file extension of the target path.
type PlotRenderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewPlotRenderer returns a renderer producing images of the given size in inches.
func NewPlotRenderer(widthIn, heightIn float64) *PlotRenderer {
	return &PlotRenderer{Width: vg.Length(widthIn) * vg.Inch, Height: vg.Length(heightIn) * vg.Inch}
}

// Render draws fig and saves it to path, creating the parent directory.
func (r *PlotRenderer) Render(fig Figure, path string) error {
	p, err := build(fig)
	if err != nil {
		return fmt.Errorf("build chart %q: %w", fig.Title, err)
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	if err := p.Save(r.Width, r.Height, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

func build(fig Figure) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.Legend.Top = true
	p.Legend.Left = fig.LegendTopLeft

	grid := plotter.NewGrid()
	dashes := []vg.Length{vg.Points(4), vg.Points(4)}
	grid.Vertical.Dashes = dashes
	grid.Horizontal.Dashes = dashes
	grid.Vertical.Color = color.Gray{Y: 190}
	grid.Horizontal.Color = color.Gray{Y: 190}

	if len(fig.Bars) > 0 {
		grid.Vertical.Width = 0
		p.Add(grid)
		return p, addBars(p, fig)
	}
	p.Add(grid)
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}

	lo, hi := yExtent(fig)
	for _, b := range fig.Bands {
		x0, x1 := unix(b.From), unix(b.To)
		poly, err := plotter.NewPolygon(plotter.XYs{{X: x0, Y: lo}, {X: x1, Y: lo}, {X: x1, Y: hi}, {X: x0, Y: hi}})
		if err != nil {
			return nil, fmt.Errorf("band %q: %w", b.Label, err)
		}
		poly.Color = b.Color
		poly.LineStyle.Width = 0
		p.Add(poly)
		if b.Label != "" {
			p.Legend.Add(b.Label, poly)
		}
	}
	for _, f := range fig.Fills {
		if err := addSignFill(p, f); err != nil {
			return nil, err
		}
	}
	if fig.ZeroLine {
		zero := plotter.NewFunction(func(float64) float64 { return 0 })
		zero.Color = Black
		zero.Dashes = dashes
		p.Add(zero)
	}
	for _, l := range fig.Lines {
		xys := toXYs(l.Points)
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", l.Label, err)
		}
		if l.Color != nil {
			line.Color = l.Color
		}
		if l.Width > 0 {
			line.Width = vg.Points(l.Width)
		}
		p.Add(line)
		if l.Label != "" {
			p.Legend.Add(l.Label, line)
		}
	}
	return p, nil
}

// addBars draws one bar per category; a NaN value is drawn as an empty bar.
func addBars(p *plot.Plot, fig Figure) error {
	values := make(plotter.Values, len(fig.Bars))
	labels := make([]string, len(fig.Bars))
	for i, b := range fig.Bars {
		labels[i] = b.Label
		if !math.IsNaN(b.Value) {
			values[i] = b.Value
		}
	}
	bars, err := plotter.NewBarChart(values, vg.Points(60))
	if err != nil {
		return fmt.Errorf("bars: %w", err)
	}
	bars.Color = Blue
	if fig.BarColor != nil {
		bars.Color = fig.BarColor
	}
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)
	return nil
}

func addSignFill(p *plot.Plot, f SignFill) error {
	for _, part := range []struct {
		above bool
		label string
		color color.Color
	}{
		{true, f.AboveLabel, f.Above},
		{false, f.BelowLabel, f.Below},
	} {
		xys := clipToZero(f.Points, part.above)
		if xys == nil {
			continue
		}
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return fmt.Errorf("fill %q: %w", part.label, err)
		}
		poly.Color = part.color
		poly.LineStyle.Width = 0
		p.Add(poly)
		if part.label != "" {
			p.Legend.Add(part.label, poly)
		}
	}
	return nil
}

// clipToZero returns the closed outline between the series and zero on one
// side of the axis, inserting the zero crossings between samples. It returns
// nil when the series never reaches that side.
func clipToZero(points []Point, above bool) plotter.XYs {
	xys := toXYs(points)
	if len(xys) < 2 {
		return nil
	}
	clamp := func(y float64) float64 {
		if above {
			return math.Max(y, 0)
		}
		return math.Min(y, 0)
	}
	var out plotter.XYs
	reached := false
	for i, pt := range xys {
		if i > 0 {
			prev := xys[i-1]
			if (prev.Y < 0 && pt.Y > 0) || (prev.Y > 0 && pt.Y < 0) {
				xc := prev.X + (pt.X-prev.X)*(-prev.Y)/(pt.Y-prev.Y)
				out = append(out, plotter.XY{X: xc, Y: 0})
			}
		}
		y := clamp(pt.Y)
		if y != 0 {
			reached = true
		}
		out = append(out, plotter.XY{X: pt.X, Y: y})
	}
	if !reached {
		return nil
	}
	out = append(out, plotter.XY{X: xys[len(xys)-1].X, Y: 0}, plotter.XY{X: xys[0].X, Y: 0})
	return out
}

// yExtent spans every drawn value, and zero when a zero line or fill is drawn.
func yExtent(fig Figure) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	see := func(pts []Point) {
		for _, pt := range pts {
			if math.IsNaN(pt.Y) {
				continue
			}
			lo, hi = math.Min(lo, pt.Y), math.Max(hi, pt.Y)
		}
	}
	for _, l := range fig.Lines {
		see(l.Points)
	}
	for _, f := range fig.Fills {
		see(f.Points)
	}
	if fig.ZeroLine || len(fig.Fills) > 0 {
		lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}

func toXYs(points []Point) plotter.XYs {
	xys := make(plotter.XYs, 0, len(points))
	for _, pt := range points {
		if math.IsNaN(pt.Y) || math.IsInf(pt.Y, 0) {
			continue
		}
		xys = append(xys, plotter.XY{X: unix(pt.X), Y: pt.Y})
	}
	return xys
}

func unix(t time.Time) float64 { return float64(t.Unix()) }
