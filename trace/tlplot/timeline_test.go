package tlplot

import (
	"bytes"
	"image/color"
	"testing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func TestTimelinePlotWritesNonEmptyOutput(t *testing.T) {
	p := plot.New()
	p.Title.Text = "handle trace"

	tl := NewTimelinePlot([]Row{
		{
			Location: 0,
			RowLabel: "sink-0",
			Activities: []Activity{
				{Start: 0, End: 1000, Color: color.RGBA{R: 0x40, G: 0x80, B: 0xC0, A: 0xFF}, Label: "grant"},
			},
			Markers: []Marker{
				{Time: 1000, Glyph: draw.GlyphStyle{Shape: draw.CircleGlyph{}}},
			},
		},
	}, vg.Points(10))
	p.Add(tl)

	var buf bytes.Buffer
	if err := WriteTimeline(p, 4*vg.Inch, 2*vg.Inch, &buf, "svg"); err != nil {
		t.Fatalf("WriteTimeline() = %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("WriteTimeline produced no output")
	}
}

func TestTimelinePlotDataRangeCoversActivitiesAndMarkers(t *testing.T) {
	tl := NewTimelinePlot([]Row{
		{
			Location:   0,
			Activities: []Activity{{Start: 100, End: 900}},
			Markers:    []Marker{{Time: 950}},
		},
		{
			Location:   1,
			Activities: []Activity{{Start: -50, End: 500}},
		},
	}, vg.Points(10))

	xmin, xmax, ymin, ymax := tl.DataRange()
	if xmin != -50 || xmax != 950 {
		t.Fatalf("DataRange x = [%v,%v], want [-50,950]", xmin, xmax)
	}
	if ymin != 0 || ymax != 1 {
		t.Fatalf("DataRange y = [%v,%v], want [0,1]", ymin, ymax)
	}
}
