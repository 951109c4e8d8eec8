// Package resolver decides which file the process should log to.
//
// Given a requested path it walks a short, ordered chain: pick the path (or
// the fallback constant), dereference a symlink, then accept a writable
// directory (as dir/debug.log) or a writable file. Anything it cannot
// classify is applied as given. Every failure leaves the current destination
// untouched and is reported as a diagnostic, never returned to the host.
package resolver

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	bberrors "github.com/blueblazeassociates/blueblaze-debug-log-file/internal/errors"
	"github.com/blueblazeassociates/blueblaze-debug-log-file/internal/logging"
)

// FallbackName is the configuration constant consulted when no path is given.
const FallbackName = "BBA_WP__DEBUG_LOG_FILE"

// Setter is the process-wide log destination as seen by the resolver.
type Setter interface {
	SetPath(path string)
}

// Reporter receives diagnostic lines.
type Reporter interface {
	Error(message string) bool
	Debug(message string) bool
}

// TargetKind classifies the resolved path.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetDirectory
	TargetFile
	TargetUnknown
)

func (k TargetKind) String() string {
	switch k {
	case TargetDirectory:
		return "directory"
	case TargetFile:
		return "file"
	case TargetUnknown:
		return "unknown"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k TargetKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Decision is the outcome of the resolution chain.
type Decision struct {
	// Selected is the path chosen in the selection step.
	Selected string `json:"selected"`
	// FromFallback is set when Selected came from the fallback constant.
	FromFallback bool `json:"from_fallback"`
	// Symlink is set when Selected was a symlink.
	Symlink bool `json:"symlink"`
	// Resolved is Selected after symlink dereferencing.
	Resolved string `json:"resolved"`
	// Kind is what Resolved turned out to be.
	Kind TargetKind `json:"kind"`
	// Path is the log file to apply.
	Path string `json:"path"`
}

// Note returns an informational error when the decision is a guess, and nil
// otherwise. It never means the path is unusable.
func (d Decision) Note() error {
	if d.Kind != TargetUnknown {
		return nil
	}
	return bberrors.IndeterminateTarget(d.Path)
}

// Resolver runs the decision chain against the filesystem.
type Resolver struct {
	setting  Setter
	diag     Reporter
	fallback func() (string, bool)

	// Filesystem probes, replaceable in tests.
	lstat    func(name string) (fs.FileInfo, error)
	stat     func(name string) (fs.FileInfo, error)
	readlink func(name string) (string, error)
	writable func(path string) bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFallback sets the lookup for the fallback constant. The bool reports
// whether the constant is defined.
func WithFallback(lookup func() (string, bool)) Option {
	return func(r *Resolver) {
		r.fallback = lookup
	}
}

// New creates a Resolver that applies decisions to setting and reports to diag.
// Without WithFallback no fallback constant is defined.
func New(setting Setter, diag Reporter, opts ...Option) *Resolver {
	r := &Resolver{
		setting:  setting,
		diag:     diag,
		fallback: func() (string, bool) { return "", false },
		lstat:    os.Lstat,
		stat:     os.Stat,
		readlink: os.Readlink,
		writable: isWritable,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveAndApply resolves configured and, on success, points the setting at
// the result. Failures are reported as diagnostics and leave the setting as it was.
func (r *Resolver) ResolveAndApply(configured string) {
	d, err := r.Resolve(configured)

	if d.Symlink {
		r.diag.Debug("Detected a symlink and resolved it to a real path: " + d.Resolved)
	}

	if err != nil {
		r.diag.Error(diagnosticMessage(err))
		return
	}

	if note := d.Note(); note != nil {
		r.diag.Debug(diagnosticMessage(note))
	}

	r.setting.SetPath(d.Path)
}

// Resolve runs the decision chain without side effects. On error the
// Decision holds whatever was determined before the failure.
func (r *Resolver) Resolve(configured string) (Decision, error) {
	var d Decision

	// Selection.
	d.Selected = configured
	if d.Selected == "" {
		value, defined := r.fallback()
		if !defined {
			return d, bberrors.ConfigMissing("No log path was given and " + FallbackName + " is not defined.").
				WithSuggestion("pass a log path or define " + FallbackName)
		}
		if value == "" {
			return d, bberrors.ConfigMissing("No log path was given and " + FallbackName + " is empty.").
				WithSuggestion("set " + FallbackName + " to a directory or file path")
		}
		d.Selected = value
		d.FromFallback = true
	}

	// Symlink dereferencing.
	d.Resolved = d.Selected
	if info, err := r.lstat(d.Selected); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		target, err := r.readlink(d.Selected)
		if err != nil {
			return d, bberrors.SymlinkUnresolved(d.Selected, err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(d.Selected), target)
		}
		d.Symlink = true
		d.Resolved = target
	}

	info, err := r.stat(d.Resolved)
	switch {
	case err == nil && info.IsDir():
		d.Kind = TargetDirectory
		if !r.writable(d.Resolved) {
			return d, bberrors.NotWritable("directory", d.Resolved)
		}
		d.Path = filepath.Join(d.Resolved, logging.DebugLogName)

	case err == nil && info.Mode().IsRegular():
		d.Kind = TargetFile
		if !r.writable(d.Resolved) {
			return d, bberrors.NotWritable("file", d.Resolved)
		}
		d.Path = d.Resolved

	default:
		d.Kind = TargetUnknown
		d.Path = d.Resolved
	}

	return d, nil
}

func diagnosticMessage(err error) string {
	var e *bberrors.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
