package elevation

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/iafilius/ElevationProfile/src/types"
)

// DefaultProfilesFile is where the collector appends records unless told otherwise.
const DefaultProfilesFile = "elevation_profiles.jsonl"

var errWriterClosed = errors.New("elevation: result writer closed")

// ResultWriter appends ProfileRecords as JSON lines from a single goroutine.
type ResultWriter struct {
	path    string
	ch      chan types.ProfileRecord
	wg      sync.WaitGroup
	sendMu  sync.Mutex
	closed  bool
	mu      sync.Mutex
	written int
	err     error
}

// NewResultWriter opens path for appending (creating it if needed) and starts the writer goroutine.
func NewResultWriter(path string) (*ResultWriter, error) {
	if path == "" {
		path = DefaultProfilesFile
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	log.Infof("results file (append): %s", path)
	w := &ResultWriter{path: path, ch: make(chan types.ProfileRecord, 128)}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer f.Close()
		enc := json.NewEncoder(f)
		for r := range w.ch {
			if err := enc.Encode(r); err != nil {
				log.Errorf("encode profile %s: %v", r.ID, err)
				w.mu.Lock()
				if w.err == nil {
					w.err = err
				}
				w.mu.Unlock()
				continue
			}
			w.mu.Lock()
			w.written++
			w.mu.Unlock()
		}
	}()
	return w, nil
}

// Path returns the file being written.
func (w *ResultWriter) Path() string { return w.path }

// Write queues one record. It fails after Close.
func (w *ResultWriter) Write(rec types.ProfileRecord) error {
	w.sendMu.Lock()
	defer w.sendMu.Unlock()
	if w.closed {
		return errWriterClosed
	}
	if rec.SchemaVersion == 0 {
		rec.SchemaVersion = types.SchemaVersion
	}
	w.ch <- rec
	return nil
}

// Close flushes queued records and closes the file. It returns the first encode error, if any,
// and reports how many records were written.
func (w *ResultWriter) Close() (int, error) {
	w.sendMu.Lock()
	if !w.closed {
		w.closed = true
		close(w.ch)
	}
	w.sendMu.Unlock()
	w.wg.Wait()
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written, w.err
}
