package tlplot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/orbitronics/timesync/trace"
)

func TestSaveTimelineWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	p := plot.New()
	p.Title.Text = "handle trace"

	if err := SaveTimeline(p, 4*vg.Inch, 2*vg.Inch, path, "svg"); err != nil {
		t.Fatalf("SaveTimeline() = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() = %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("SaveTimeline produced an empty file")
	}
}

type failingCloser struct {
	*os.File
	closeErr error
}

func (f *failingCloser) Close() error {
	_ = f.File.Close()
	return f.closeErr
}

func TestWriteCloseTimelineCombinesCloseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	fc := &failingCloser{File: f, closeErr: errors.New("boom")}

	p := plot.New()
	err = WriteCloseTimeline(p, 4*vg.Inch, 2*vg.Inch, fc, "svg")
	if err == nil {
		t.Fatalf("WriteCloseTimeline() = nil, want the close error surfaced")
	}
}

func TestSaveHandleTimelineNamesFileAfterHandles(t *testing.T) {
	dir := t.TempDir()
	events := []trace.Event{
		{Timestamp: time.Unix(0, 0), Handle: "sink-0", Kind: "grant", Detail: "1000ticks"},
		{Timestamp: time.Unix(1, 0), Handle: "sink-0", Kind: "continue", Detail: "1000ticks"},
	}

	path, err := SaveHandleTimeline(events, dir)
	if err != nil {
		t.Fatalf("SaveHandleTimeline() = %v", err)
	}
	if filepath.Base(path) != "sink-0.svg" {
		t.Fatalf("SaveHandleTimeline() path = %q, want basename sink-0.svg", path)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("SaveHandleTimeline() did not write a non-empty file: %v", err)
	}
}
