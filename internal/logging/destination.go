package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Destination is the process-wide log destination.
//
// The zero path means "host default": records go to the fallback writer.
// Once a path is set, each Write appends to that file, opening it lazily.
// If the file cannot be opened the record still reaches the fallback.
type Destination struct {
	mu       sync.Mutex
	path     string
	file     io.WriteCloser
	fallback io.Writer

	// open is replaceable in tests.
	open func(path string) (io.WriteCloser, error)
}

// NewDestination creates a destination with no path set. fallback defaults to stderr.
func NewDestination(fallback io.Writer) *Destination {
	if fallback == nil {
		fallback = os.Stderr
	}
	return &Destination{fallback: fallback, open: openAppend}
}

func openAppend(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// SetPath switches the destination to path. A handle opened for the previous
// path is closed.
func (d *Destination) SetPath(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if path == d.path {
		return
	}
	d.closeFile()
	d.path = path
}

// Path returns the current destination path, or "" for the host default.
func (d *Destination) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.path
}

// Write implements io.Writer. One call is one record.
func (d *Destination) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.path == "" {
		return d.fallback.Write(p)
	}

	if d.file == nil {
		if err := d.openFile(); err != nil {
			return d.fallback.Write(p)
		}
	}

	n, err := d.file.Write(p)
	if err != nil {
		// Drop the handle so the next record retries the open.
		d.closeFile()
		// Only the unwritten tail goes to the fallback.
		m, ferr := d.fallback.Write(p[n:])
		return n + m, ferr
	}
	return n, nil
}

// Sync flushes the open file, if any.
func (d *Destination) Sync() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if f, ok := d.file.(interface{ Sync() error }); ok {
		return f.Sync()
	}
	return nil
}

// Close closes the open file, if any. The path is kept; a later Write reopens it.
func (d *Destination) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

func (d *Destination) openFile() error {
	f, err := d.open(d.path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	d.file = f
	return nil
}

func (d *Destination) closeFile() {
	if d.file != nil {
		_ = d.file.Close()
		d.file = nil
	}
}
