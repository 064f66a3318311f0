// Package storage resolves the host's data directories and persists the
// raw byte blobs the core host produces: SRAM saves, serialized states,
// and the JSON host configuration.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

var appName = "TestFront"

// Init overrides the application data directory name. Call before any
// other storage operation.
func Init(dataDirName string) {
	if dataDirName != "" {
		appName = dataDirName
	}
}

const (
	configFile = "config.json"
	systemDir  = "system"
	savesDir   = "saves"
	statesDir  = "states"
)

// BaseDir returns the base directory for application data.
// - macOS: ~/Library/Application Support/<appName>
// - Windows: %APPDATA%/<appName>
// - Linux and the rest: $XDG_DATA_HOME/<appName> or ~/.local/share/<appName>
func BaseDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", appName), nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		return filepath.Join(appData, appName), nil
	default:
		if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
			return filepath.Join(dataHome, appName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, ".local", "share", appName), nil
	}
}

// SystemDir returns the directory answered to cores asking for the system
// directory (BIOS files and similar).
func SystemDir() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, systemDir), nil
}

// SaveDir returns the directory for SRAM blobs, also answered to cores
// asking for the save directory.
func SaveDir() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, savesDir), nil
}

// StateDir returns the directory for serialized save states.
func StateDir() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, statesDir), nil
}

// EnsureDirectories creates the full directory tree.
func EnsureDirectories() error {
	base, err := BaseDir()
	if err != nil {
		return err
	}

	dirs := []string{
		base,
		filepath.Join(base, systemDir),
		filepath.Join(base, savesDir),
		filepath.Join(base, statesDir),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ConfigPath returns the full path to config.json.
func ConfigPath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configFile), nil
}
