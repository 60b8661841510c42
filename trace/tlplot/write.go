package tlplot

import (
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/orbitronics/timesync/trace"
)

// WriteTimeline renders p at width x height in format ("png", "svg",
// "pdf", ...) to output.
func WriteTimeline(p *plot.Plot, width, height vg.Length, output io.Writer, format string) error {
	w, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = w.WriteTo(output)
	return err
}

func combineErrors(errs ...error) (err error) {
	for _, e := range errs {
		switch {
		case e == nil:
		case err == nil:
			err = e
		default:
			err = multierror.Append(err, e)
		}
	}
	return err
}

// WriteCloseTimeline renders p to output and closes it afterward,
// combining a write error with any close error instead of masking one.
func WriteCloseTimeline(p *plot.Plot, width, height vg.Length, output io.WriteCloser, format string) (err error) {
	defer func() {
		e := output.Close()
		err = combineErrors(err, e)
	}()
	return WriteTimeline(p, width, height, output, format)
}

// SaveTimeline renders p to a file at path in format.
func SaveTimeline(p *plot.Plot, width, height vg.Length, path string, format string) error {
	output, err := os.Create(path)
	if err != nil {
		return err
	}
	return WriteCloseTimeline(p, width, height, output, format)
}

// SaveHandleTimeline builds a TimelinePlot straight from a decoded event
// log and saves it under dir, using DefaultFilename to name the file
// after the handles it covers rather than making every caller invent a
// path for the common case of one recorder, one run, one output file.
// It returns the path actually written.
func SaveHandleTimeline(events []trace.Event, dir string) (string, error) {
	p := plot.New()
	p.Add(BuildTimeline(events))

	format := "svg"
	path := filepath.Join(dir, DefaultFilename(events, format))
	if err := SaveTimeline(p, 8*vg.Inch, vg.Length(len(handleOrder(events)))*vg.Inch+vg.Inch, path, format); err != nil {
		return "", err
	}
	return path, nil
}
