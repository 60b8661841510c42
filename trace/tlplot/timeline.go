// Package tlplot renders a recorded handle trace as a Gantt-style
// timeline: one labeled row per handle, a colored box per granted
// quantum, and glyph markers for point events like request or dispose.
package tlplot

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Activity is one colored box drawn on a row, spanning [Start, End].
type Activity struct {
	Start float64
	End   float64
	Color color.Color
	Label string
}

// Marker is one point glyph drawn on a row at Time.
type Marker struct {
	Time  float64
	Glyph draw.GlyphStyle
}

// TimelinePlot draws a set of rows, each a named handle's activity over
// time. Unlike a single fixed row, a real run has one row per handle in
// flight, so each Row carries its own Location and label rather than the
// plot having a single Location.
type TimelinePlot struct {
	Rows      []Row
	Height    vg.Length
	BoxStyle  draw.LineStyle
	TextStyle draw.TextStyle
}

// Row is one handle's activities and markers, plotted at Location on the
// plot's Y axis.
type Row struct {
	Location   float64
	RowLabel   string
	Activities []Activity
	Markers    []Marker
}

var _ plot.Plotter = &TimelinePlot{}

// NewTimelinePlot builds a TimelinePlot with the same default box/text
// styling gonum's own examples use for annotated plots.
func NewTimelinePlot(rows []Row, height vg.Length) *TimelinePlot {
	return &TimelinePlot{
		Rows:     rows,
		Height:   height,
		BoxStyle: plotter.DefaultLineStyle,
		TextStyle: text.Style{
			Font:     font.From(plotter.DefaultFont, plotter.DefaultFontSize),
			Rotation: 0,
			XAlign:   draw.XCenter,
			YAlign:   draw.YCenter,
			Handler:  plot.DefaultTextHandler,
		},
	}
}

// Plot implements plot.Plotter.
func (t *TimelinePlot) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	for _, row := range t.Rows {
		y := trY(row.Location)
		if !c.ContainsY(y) {
			continue
		}

		for _, activity := range row.Activities {
			xStart, xEnd := trX(activity.Start), trX(activity.End)
			pts := []vg.Point{
				{X: xStart, Y: y - t.Height/2},
				{X: xEnd, Y: y - t.Height/2},
				{X: xEnd, Y: y + t.Height/2},
				{X: xStart, Y: y + t.Height/2},
				{X: xStart, Y: y - t.Height/2},
			}
			c.FillPolygon(activity.Color, c.ClipPolygonX(pts[0:4]))
			c.StrokeLines(t.BoxStyle, c.ClipLinesX(pts)...)
			if activity.Label != "" {
				c.FillText(t.TextStyle, vg.Point{
					X: (xStart + xEnd) / 2,
					Y: y,
				}, activity.Label)
			}
		}

		for _, marker := range row.Markers {
			c.DrawGlyph(marker.Glyph, vg.Point{
				X: trX(marker.Time),
				Y: y,
			})
		}

		if row.RowLabel != "" {
			c.FillText(t.TextStyle, vg.Point{X: trX(0), Y: y}, row.RowLabel)
		}
	}
}

type xyconv TimelinePlot

func (t *xyconv) Len() int {
	n := 0
	for _, row := range t.Rows {
		n += len(row.Markers) + len(row.Activities)*2
	}
	return n
}

func (t *xyconv) XY(i int) (x, y float64) {
	for _, row := range t.Rows {
		rowLen := len(row.Markers) + len(row.Activities)*2
		if i >= rowLen {
			i -= rowLen
			continue
		}
		if i < len(row.Markers) {
			return row.Markers[i].Time, row.Location
		}
		i -= len(row.Markers)
		if i < len(row.Activities) {
			return row.Activities[i].Start, row.Location
		}
		i -= len(row.Activities)
		return row.Activities[i].End, row.Location
	}
	panic("invalid index")
}

// DataRange implements plot.DataRanger.
func (t *TimelinePlot) DataRange() (xmin, xmax, ymin, ymax float64) {
	return plotter.XYRange((*xyconv)(t))
}
