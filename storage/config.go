package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the host configuration persisted as config.json.
type Config struct {
	Version int `json:"version"`

	// Directory overrides; empty means the platform default.
	SystemDir string `json:"systemDir,omitempty"`
	SaveDir   string `json:"saveDir,omitempty"`

	Audio AudioConfig `json:"audio"`

	// CoreVariables seeds core-declared variables by core name, then by
	// variable key.
	CoreVariables map[string]map[string]string `json:"coreVariables,omitempty"`
}

// AudioConfig holds audio output settings for the standalone runner.
type AudioConfig struct {
	Mute   bool    `json:"mute"`
	Volume float64 `json:"volume"`
}

const configVersion = 1

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Version: configVersion,
		Audio:   AudioConfig{Volume: 1.0},
	}
}

// LoadConfig loads config.json, returning defaults when the file does not
// exist. A corrupt file is an error; a valid file with out-of-range values
// is repaired by Validate.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(raw, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.Validate()
	return config, nil
}

// SaveConfig writes config.json atomically.
func SaveConfig(config *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return atomicWrite(path, raw)
}

// Validate clamps out-of-range values and drops unusable entries in
// place. Directory overrides must be absolute paths.
func (c *Config) Validate() {
	if c.Version <= 0 {
		c.Version = configVersion
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		c.Audio.Volume = 1.0
	}
	if c.SystemDir != "" && !filepath.IsAbs(c.SystemDir) {
		c.SystemDir = ""
	}
	if c.SaveDir != "" && !filepath.IsAbs(c.SaveDir) {
		c.SaveDir = ""
	}
	for coreName, vars := range c.CoreVariables {
		if coreName == "" || len(vars) == 0 {
			delete(c.CoreVariables, coreName)
			continue
		}
		for key := range vars {
			if key == "" {
				delete(vars, key)
			}
		}
	}
}

// ResolveSystemDir returns the configured system directory or the
// platform default.
func (c *Config) ResolveSystemDir() (string, error) {
	if c.SystemDir != "" {
		return c.SystemDir, nil
	}
	return SystemDir()
}

// ResolveSaveDir returns the configured save directory or the platform
// default.
func (c *Config) ResolveSaveDir() (string, error) {
	if c.SaveDir != "" {
		return c.SaveDir, nil
	}
	return SaveDir()
}
