// Package config resolves the quote data directory and user settings.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppDir is the directory name under XDG_CONFIG_HOME.
	AppDir       = "quote"
	StoreFile    = "quotes.json"
	SettingsFile = "config.yml"
	EnvFile      = "quote.env"
	CacheDir     = "cache"
	IndexFile    = "quotes.db"

	// HomeEnv overrides the data directory entirely.
	HomeEnv = "QUOTE_HOME"
	// EditorEnv names the editor used for buffer-mode entry.
	EditorEnv = "EDITOR"
)

// DataDir returns the directory holding the store and settings.
// Precedence: $QUOTE_HOME, $XDG_CONFIG_HOME/quote, ~/.config/quote.
func DataDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return ExpandPath(dir)
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppDir)
}

// StorePath returns the path to quotes.json under dir.
func StorePath(dir string) string {
	return filepath.Join(dir, StoreFile)
}

// SettingsPath returns the path to config.yml under dir.
func SettingsPath(dir string) string {
	return filepath.Join(dir, SettingsFile)
}

// EnvPath returns the path to quote.env under dir.
func EnvPath(dir string) string {
	return filepath.Join(dir, EnvFile)
}

// IndexPath returns the path to the search index database under dir.
func IndexPath(dir string) string {
	return filepath.Join(dir, CacheDir, IndexFile)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
