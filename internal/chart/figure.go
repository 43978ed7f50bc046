// Package chart describes static charts declaratively and renders them to
// image files.
package chart

import (
	"image/color"
	"time"
)

// Point is one sample of a line. A NaN Y is a gap and is not drawn.
type Point struct {
	X time.Time
	Y float64
}

// Line is a labelled series drawn over a time axis.
type Line struct {
	Label  string
	Points []Point
	Color  color.Color
	Width  float64 // points; 0 uses the default
}

// Band shades the vertical span [From, To] across the whole plot height.
type Band struct {
	Label    string
	From, To time.Time
	Color    color.Color
}

// SignFill shades the area between a series and zero, using Above where the
// series is non-negative and Below where it is negative.
type SignFill struct {
	Points     []Point
	AboveLabel string
	BelowLabel string
	Above      color.Color
	Below      color.Color
}

// Bar is one labelled category of a bar chart.
type Bar struct {
	Label string
	Value float64
}

// Figure is everything needed to draw one chart. A figure holds either Bars
// or time-axis elements (Lines, Bands, Fills).
type Figure struct {
	Title    string
	XLabel   string
	YLabel   string
	Lines    []Line
	Bands    []Band
	Fills    []SignFill
	ZeroLine bool
	Bars     []Bar
	BarColor color.Color

	// LegendTopLeft places the legend in the upper-left corner instead of the upper right.
	LegendTopLeft bool
}

// Renderer writes a figure to path.
type Renderer interface {
	Render(fig Figure, path string) error
}

// Common palette.
var (
	Navy   = color.RGBA{R: 0, G: 0, B: 128, A: 255}
	Blue   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	Orange = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	Black  = color.RGBA{A: 255}

	// Translucent fills.
	RedShade    = color.NRGBA{R: 255, A: 38}
	GreenShade  = color.NRGBA{G: 128, A: 51}
	OrangeShade = color.NRGBA{R: 255, G: 165, A: 51}
)
