// Package xdg provides XDG Base Directory paths for taskdesk.
package xdg

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "taskdesk"

// StateDir returns the XDG state directory for taskdesk. Checks
// XDG_STATE_HOME first, falls back to ~/.local/state.
func StateDir() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".local", "state")
	}
	return filepath.Join(base, appName)
}

// DataDir returns the XDG data directory for taskdesk. Checks
// XDG_DATA_HOME first, falls back to ~/.local/share. Attachment
// downloads land here.
func DataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".local", "share")
	}
	return filepath.Join(base, appName)
}

// EnsureDir creates a directory and all parent directories if they
// don't exist. Directories are created with 0700 permissions.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
