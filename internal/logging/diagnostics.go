package logging

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

// Tag prefixes every diagnostic line.
const Tag = "blueblaze-debug-log-file"

// Diagnostics writes tagged diagnostic lines to the host's error sink.
type Diagnostics struct {
	out   io.Writer
	debug atomic.Bool
}

// NewDiagnostics creates diagnostics writing to out (stderr when nil).
func NewDiagnostics(out io.Writer, debug bool) *Diagnostics {
	if out == nil {
		out = os.Stderr
	}
	d := &Diagnostics{out: out}
	d.debug.Store(debug)
	return d
}

// Error writes the message unconditionally and reports whether the write succeeded.
func (d *Diagnostics) Error(message string) bool {
	_, err := fmt.Fprintf(d.out, "%s: %s\n", Tag, message)
	return err == nil
}

// Debug writes the message only in debug mode. With debug off it reports
// success without writing.
func (d *Diagnostics) Debug(message string) bool {
	if !d.debug.Load() {
		return true
	}
	return d.Error(message)
}
