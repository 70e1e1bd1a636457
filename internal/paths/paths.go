// Package paths resolves hookr's XDG locations.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "hookr"

// ConfigDir returns the hookr config directory.
// It respects XDG_CONFIG_HOME if set, otherwise falls back to ~/.config/hookr.
func ConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", appName), nil
}

// DataDir returns the hookr data directory.
// It respects XDG_DATA_HOME if set, otherwise falls back to ~/.local/share/hookr.
func DataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".local", "share", appName), nil
}

// DatabasePath returns the store location: $HOOKR_DB if set, otherwise
// hookr.db inside DataDir.
func DatabasePath() (string, error) {
	if p := os.Getenv("HOOKR_DB"); p != "" {
		return p, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hookr.db"), nil
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
