package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// DebugLogName is the file created inside a directory log path.
const DebugLogName = "debug.log"

// DefaultLogDir returns the default log directory (~/.blueblaze/logs/).
// Falls back to the temp directory if the home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".blueblaze", "logs")
	}
	return filepath.Join(home, ".blueblaze", "logs")
}

// DefaultLogPath returns the default debug log path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), DebugLogName)
}

// FindLogFile locates the log file to view.
// Priority:
//  1. Explicit path (if provided)
//  2. The effective destination path (if set)
//  3. ~/.blueblaze/logs/debug.log
//
// A directory is taken to mean its debug.log.
func FindLogFile(explicit, effective string) (string, error) {
	candidate := explicit
	if candidate == "" {
		candidate = effective
	}
	if candidate != "" {
		if info, err := os.Stat(candidate); err == nil {
			if info.IsDir() {
				candidate = filepath.Join(candidate, DebugLogName)
				if _, err := os.Stat(candidate); err != nil {
					return "", fmt.Errorf("log file not found: %s", candidate)
				}
			}
			return candidate, nil
		}
		return "", fmt.Errorf("log file not found: %s", candidate)
	}

	defaultPath := DefaultLogPath()
	if _, err := os.Stat(defaultPath); err == nil {
		return defaultPath, nil
	}

	return "", fmt.Errorf("no log file found. Nothing has been logged yet, or the destination is stderr.\nExpected at: %s", defaultPath)
}
