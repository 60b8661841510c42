// Package trace records and replays the event history of one or more
// timesync handles; its tlplot subpackage renders that history as a
// timeline plot.
package trace

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Event is a single recorded transition on a named handle.
type Event struct {
	Timestamp time.Time
	Handle    string
	Kind      string
	Detail    string
}

// Recorder appends Events to a CSV file. It is safe for concurrent use by
// multiple handles' source and sink goroutines, unlike the single-writer
// assumption a non-concurrent recorder could get away with.
type Recorder struct {
	mu     sync.Mutex
	output *csv.Writer
	file   *os.File
}

// NewNullRecorder returns a Recorder that discards every event. Useful
// as a default when no trace file was requested.
func NewNullRecorder() *Recorder {
	return &Recorder{}
}

// NewRecorder creates a CSV recorder at path, writing a header row
// immediately.
func NewRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"Nanoseconds", "Handle", "Kind", "Detail"}); err != nil {
		_ = f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Recorder{output: w, file: f}, nil
}

// IsRecording reports whether this Recorder writes anywhere.
func (r *Recorder) IsRecording() bool {
	return r.output != nil
}

// Record appends one event. Panics on an empty handle name, mirroring the
// channel-name check this pattern is grounded on; a silently mislabeled
// event is worse than a loud one.
func (r *Recorder) Record(handle, kind, detail string) {
	if handle == "" {
		panic("trace: invalid empty handle name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.output == nil {
		return
	}
	err := r.output.Write([]string{
		strconv.FormatInt(time.Now().UnixNano(), 10),
		handle,
		kind,
		detail,
	})
	r.output.Flush()
	if err == nil {
		err = r.output.Error()
	}
	if err != nil {
		log.Fatal(err)
	}
}

// Close flushes and closes the underlying file, if any.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	r.output.Flush()
	err := r.output.Error()
	if cerr := r.file.Close(); cerr != nil {
		err = combineErrors(err, cerr)
	}
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

// DecodeRecording reads back every Event written by a Recorder at path.
func DecodeRecording(path string) (events []Event, re error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			re = multierror.Append(re, err)
		}
	}()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, errors.New("no header found")
	}
	if len(rows[0]) != 4 || rows[0][0] != "Nanoseconds" || rows[0][1] != "Handle" || rows[0][2] != "Kind" || rows[0][3] != "Detail" {
		return nil, fmt.Errorf("invalid header: %v", rows[0])
	}
	for _, row := range rows[1:] {
		if len(row) != 4 {
			return nil, fmt.Errorf("invalid data record: %v", row)
		}
		ns, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, err
		}
		events = append(events, Event{
			Timestamp: time.Unix(0, ns),
			Handle:    row[1],
			Kind:      row[2],
			Detail:    row[3],
		})
	}
	return events, nil
}
