package trace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNullRecorderDiscards(t *testing.T) {
	r := NewNullRecorder()
	if r.IsRecording() {
		t.Fatalf("NewNullRecorder().IsRecording() = true")
	}
	r.Record("h1", "grant", "1000ticks")
	if err := r.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
}

func TestRecorderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	r, err := NewRecorder(path)
	if err != nil {
		t.Fatalf("NewRecorder() = %v", err)
	}
	if !r.IsRecording() {
		t.Fatalf("IsRecording() = false, want true")
	}
	r.Record("h1", "grant", "1000ticks")
	r.Record("h1", "request", "granted=true interval=1000ticks")
	if err := r.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	events, err := DecodeRecording(path)
	if err != nil {
		t.Fatalf("DecodeRecording() = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Handle != "h1" || events[0].Kind != "grant" {
		t.Fatalf("events[0] = %+v", events[0])
	}
	if events[1].Kind != "request" {
		t.Fatalf("events[1] = %+v", events[1])
	}
}

func TestRecordEmptyHandleNamePanics(t *testing.T) {
	r := NewNullRecorder()
	defer func() {
		if recover() == nil {
			t.Fatalf("Record with empty handle name did not panic")
		}
	}()
	r.Record("", "grant", "")
}

func TestDecodeRecordingMissingFile(t *testing.T) {
	if _, err := DecodeRecording(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatalf("DecodeRecording(missing file) = nil error")
	}
}

func TestDecodeRecordingBadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("not,the,right,header\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() = %v", err)
	}
	if _, err := DecodeRecording(path); err == nil {
		t.Fatalf("DecodeRecording(bad header) = nil error")
	}
}
