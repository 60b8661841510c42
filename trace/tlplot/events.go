package tlplot

import (
	"image/color"
	"sort"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/orbitronics/timesync/trace"
)

var (
	continueColor = color.RGBA{R: 0x40, G: 0xA0, B: 0x40, A: 0xFF}
	breakColor    = color.RGBA{R: 0xC0, G: 0x40, B: 0x40, A: 0xFF}

	markerGlyph = draw.GlyphStyle{Shape: draw.CircleGlyph{}, Radius: vg.Points(2)}
)

// BuildTimeline turns a decoded event log into a TimelinePlot: one row
// per distinct handle, in order of first appearance, a colored Activity
// box for every grant span (green if it ended in continue, red if it
// ended in break), and a point Marker for every other event.
func BuildTimeline(events []trace.Event) *TimelinePlot {
	if len(events) == 0 {
		return NewTimelinePlot(nil, vg.Points(10))
	}

	epoch := events[0].Timestamp
	seconds := func(e trace.Event) float64 {
		return e.Timestamp.Sub(epoch).Seconds()
	}

	order := handleOrder(events)
	location := make(map[string]float64, len(order))
	rows := make([]Row, len(order))
	for i, name := range order {
		location[name] = float64(i)
		rows[i] = Row{Location: float64(i), RowLabel: name}
	}

	pendingGrantStart := make(map[string]float64)
	for _, e := range events {
		idx := int(location[e.Handle])
		switch e.Kind {
		case "grant":
			pendingGrantStart[e.Handle] = seconds(e)
		case "continue", "break":
			start, ok := pendingGrantStart[e.Handle]
			if !ok {
				continue
			}
			delete(pendingGrantStart, e.Handle)
			col := continueColor
			if e.Kind == "break" {
				col = breakColor
			}
			rows[idx].Activities = append(rows[idx].Activities, Activity{
				Start: start,
				End:   seconds(e),
				Color: col,
				Label: e.Kind,
			})
		default:
			rows[idx].Markers = append(rows[idx].Markers, Marker{
				Time:  seconds(e),
				Glyph: markerGlyph,
			})
		}
	}

	return NewTimelinePlot(rows, vg.Points(10))
}

func handleOrder(events []trace.Event) []string {
	seen := make(map[string]bool)
	var order []string
	for _, e := range events {
		if !seen[e.Handle] {
			seen[e.Handle] = true
			order = append(order, e.Handle)
		}
	}
	return order
}

// DefaultFilename derives a filename from the distinct handle names
// present in events, so a save path doesn't have to be invented by the
// caller for the common case of one recorder covering one run.
func DefaultFilename(events []trace.Event, format string) string {
	order := handleOrder(events)
	sort.Strings(order)
	name := strings.Join(order, "-")
	if name == "" {
		name = "timeline"
	}
	return name + "." + format
}
