package chart

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }

func series(vals ...float64) []Point {
	pts := make([]Point, len(vals))
	for i, v := range vals {
		pts[i] = Point{X: month(2020, time.Month(i+1)), Y: v}
	}
	return pts
}

func assertImage(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderLineChartWithBandAndGap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images", "lines.png")
	fig := Figure{
		Title:  "lines",
		XLabel: "Month",
		YLabel: "Interest",
		Lines: []Line{
			{Label: "a", Points: series(10, math.NaN(), 30), Color: Navy},
			{Label: "b", Points: series(5, 6, 7)},
		},
		Bands:         []Band{{Label: "window", From: month(2020, 2), To: month(2020, 3), Color: RedShade}},
		LegendTopLeft: true,
	}
	require.NoError(t, NewPlotRenderer(6, 3).Render(fig, path))
	assertImage(t, path)
}

func TestRenderSignFill(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fill.png")
	pts := series(60, -60, 10)
	fig := Figure{
		Title:    "diff",
		Lines:    []Line{{Label: "diff", Points: pts}},
		Fills:    []SignFill{{Points: pts, AboveLabel: "up", BelowLabel: "down", Above: GreenShade, Below: OrangeShade}},
		ZeroLine: true,
	}
	require.NoError(t, NewPlotRenderer(6, 3).Render(fig, path))
	assertImage(t, path)
}

func TestRenderBars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.png")
	fig := Figure{Title: "geo", Bars: []Bar{{Label: "Philippines", Value: 52}, {Label: "Malaysia", Value: math.NaN()}}}
	require.NoError(t, NewPlotRenderer(4, 3).Render(fig, path))
	assertImage(t, path)
}

func TestClipToZeroInsertsCrossing(t *testing.T) {
	pts := []Point{{X: time.Unix(0, 0), Y: 60}, {X: time.Unix(100, 0), Y: -60}}
	above := clipToZero(pts, true)
	require.Len(t, above, 5)
	assert.Equal(t, 50.0, above[1].X)
	assert.Equal(t, 0.0, above[1].Y)
	assert.Equal(t, 0.0, above[2].Y)

	below := clipToZero(pts, false)
	require.NotNil(t, below)
	assert.Equal(t, -60.0, below[2].Y)

	assert.Nil(t, clipToZero([]Point{{X: time.Unix(0, 0), Y: 1}, {X: time.Unix(1, 0), Y: 2}}, false))
}

func TestYExtent(t *testing.T) {
	lo, hi := yExtent(Figure{Lines: []Line{{Points: series(3, math.NaN(), 9)}}})
	assert.Equal(t, 3.0, lo)
	assert.Equal(t, 9.0, hi)

	lo, hi = yExtent(Figure{Lines: []Line{{Points: series(3, 9)}}, ZeroLine: true})
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 9.0, hi)

	lo, hi = yExtent(Figure{})
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}
