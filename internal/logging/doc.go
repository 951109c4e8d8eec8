// Package logging owns where the process writes its log records.
//
// Destination is the process-wide log destination: an io.Writer that
// appends each record to the currently configured file, or to stderr when no
// file is set or the file cannot be opened. The resolver changes it through
// SetPath; the host installs it under log/slog with Setup.
//
// Diagnostics emits the resolver's own tagged lines. Error lines are always
// written; Debug lines only when debug mode is on.
package logging
