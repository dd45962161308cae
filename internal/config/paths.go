// Package config handles loading, saving, and path management for the
// overlay's shared state documents.
package config

import (
	"os"
	"path/filepath"
)

const (
	// DataDirName is the name of the default data directory under $HOME.
	DataDirName = ".micoverlay"

	// DataDirEnv overrides the data directory location.
	DataDirEnv = "MICOVERLAY_DATA_DIR"

	// IconsDirName is the name of the icon asset directory.
	IconsDirName = "icons"

	// LogsDirName is the name of the logs directory.
	LogsDirName = "logs"
)

// File names
const (
	HotkeysFileName    = "hotkeys.json"
	SettingsFileName   = "overlay_settings.json"
	OverlayLogFileName = "overlay.log"
	ConfigLogFileName  = "config.log"
)

// DefaultDataDir returns the data directory.
// Priority: MICOVERLAY_DATA_DIR env > ~/.micoverlay/
func DefaultDataDir() (string, error) {
	if env := os.Getenv(DataDirEnv); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DataDirName), nil
}

// HotkeysFile returns the path to hotkeys.json inside dir.
func HotkeysFile(dir string) string {
	return filepath.Join(dir, HotkeysFileName)
}

// SettingsFile returns the path to overlay_settings.json inside dir.
func SettingsFile(dir string) string {
	return filepath.Join(dir, SettingsFileName)
}

// IconsDir returns the icon asset directory inside dir.
func IconsDir(dir string) string {
	return filepath.Join(dir, IconsDirName)
}

// LogsDir returns the logs directory inside dir.
func LogsDir(dir string) string {
	return filepath.Join(dir, LogsDirName)
}

// EnsureDataDir creates the data directory and its icons and logs
// subdirectories.
func EnsureDataDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := os.MkdirAll(IconsDir(dir), 0755); err != nil {
		return err
	}
	return os.MkdirAll(LogsDir(dir), 0755)
}
