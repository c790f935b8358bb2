// Package config loads the quotation settings file and the letterhead from
// the application configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppDir is the directory name used under ~/.config.
const AppDir = "quote"

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// Dir returns ~/.config/quote, falling back to the working directory when
// the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", AppDir)
}

// DefaultSettingsPath is where settings live unless settings.path overrides it.
func DefaultSettingsPath() string {
	return filepath.Join(Dir(), "settings.json")
}

// DefaultDatabasePath is where the export journal lives unless database.path overrides it.
func DefaultDatabasePath() string {
	return filepath.Join(Dir(), "quote.db")
}
