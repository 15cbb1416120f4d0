package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"skihide/pkg/logger"
)

const (
	DefaultConfigDir  = "skihide"
	DefaultConfigFile = "config.json"
)

// fileConfig is the on-disk layout. Pointer fields distinguish "absent"
// from the zero value so defaults survive partial files.
type fileConfig struct {
	Hotkey             *string  `json:"hotkey"`
	UseMouse           *bool    `json:"use_mouse,omitempty"`
	MuteAfterHide      *bool    `json:"mute_after_hide,omitempty"`
	AutostartEnabled   *bool    `json:"autostart_enabled,omitempty"`
	SilentStartEnabled *bool    `json:"silent_start_enabled,omitempty"`
	MemCleanEnabled    *bool    `json:"mem_clean_enabled,omitempty"`
	MemCleanValue      *int     `json:"mem_clean_value,omitempty"`
	MemCleanUnit       *string  `json:"mem_clean_unit,omitempty"`
	PrivacyAccepted    *bool    `json:"privacy_accepted,omitempty"`
	UpdateURL          *string  `json:"update_url,omitempty"`
	ExcludeTitles      []string `json:"exclude_titles,omitempty"`
}

// LoadFromFile loads the configuration from a JSON file.
func (c *Config) LoadFromFile(path string) error {
	c.log.Debug("Loading configuration from file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.log.Debug("Config file read successfully", "size_bytes", len(data))

	var temp fileConfig
	if err := json.Unmarshal(data, &temp); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if temp.Hotkey != nil {
		c.hotkey = *temp.Hotkey
	}
	if temp.UseMouse != nil {
		c.useMouse = *temp.UseMouse
	}
	if temp.MuteAfterHide != nil {
		c.muteAfterHide = *temp.MuteAfterHide
	}
	if temp.AutostartEnabled != nil {
		c.autostartEnabled = *temp.AutostartEnabled
	}
	if temp.SilentStartEnabled != nil {
		c.silentStartEnabled = *temp.SilentStartEnabled
	}
	if temp.MemCleanEnabled != nil {
		c.memCleanEnabled = *temp.MemCleanEnabled
	}
	if temp.MemCleanValue != nil {
		c.memCleanValue = clampMemCleanValue(*temp.MemCleanValue)
	}
	if temp.MemCleanUnit != nil {
		c.memCleanUnit = NormalizeUnit(*temp.MemCleanUnit)
	}
	if temp.PrivacyAccepted != nil {
		c.privacyAccepted = *temp.PrivacyAccepted
	}
	if temp.UpdateURL != nil && *temp.UpdateURL != "" {
		c.updateURL = *temp.UpdateURL
	}
	if temp.ExcludeTitles != nil {
		c.excludeTitles = append([]string(nil), temp.ExcludeTitles...)
	}
	return nil
}

func (c *Config) snapshot() fileConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hotkey := c.hotkey
	value := c.memCleanValue
	unit := c.memCleanUnit
	updateURL := c.updateURL
	flags := []bool{c.useMouse, c.muteAfterHide, c.autostartEnabled, c.silentStartEnabled, c.memCleanEnabled, c.privacyAccepted}
	return fileConfig{
		Hotkey:             &hotkey,
		UseMouse:           &flags[0],
		MuteAfterHide:      &flags[1],
		AutostartEnabled:   &flags[2],
		SilentStartEnabled: &flags[3],
		MemCleanEnabled:    &flags[4],
		MemCleanValue:      &value,
		MemCleanUnit:       &unit,
		PrivacyAccepted:    &flags[5],
		UpdateURL:          &updateURL,
		ExcludeTitles:      append([]string(nil), c.excludeTitles...),
	}
}

// merged overlays the current settings on the keys already in the file,
// so keys written by other versions survive a save.
func (c *Config) merged() (map[string]json.RawMessage, error) {
	out := map[string]json.RawMessage{}
	if data, err := os.ReadFile(c.path); err == nil {
		if err := json.Unmarshal(data, &out); err != nil {
			c.log.Warn("Existing config is unreadable, overwriting", "path", c.path, "error", err)
			out = map[string]json.RawMessage{}
		}
	}

	data, err := json.Marshal(c.snapshot())
	if err != nil {
		return nil, err
	}
	var current map[string]json.RawMessage
	if err := json.Unmarshal(data, &current); err != nil {
		return nil, err
	}
	for k, v := range current {
		out[k] = v
	}
	return out, nil
}

// Save writes the configuration atomically: a temp file next to the target
// is renamed over it, so a crash never leaves a half-written config.
func (c *Config) Save() error {
	fields, err := c.merged()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	data, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace config: %w", err)
	}

	c.log.Debug("Configuration saved", "path", c.path)
	return nil
}

// DefaultPath returns <user config dir>/skihide/config.json.
func DefaultPath() (string, error) {
	homeConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(homeConfigDir, DefaultConfigDir, DefaultConfigFile), nil
}

// FindConfig loads the config from providedPath, or from the default
// location when empty. A missing file is created with defaults; an
// unreadable default file falls back to defaults, an unreadable provided
// file is an error.
func FindConfig(providedPath string, log *logger.Logger) (*Config, error) {
	log.Info("Looking for configuration", "provided_path", providedPath)

	path := providedPath
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	config := New(path, log)

	err := config.LoadFromFile(path)
	switch {
	case err == nil:
		log.Info("Configuration loaded", "path", path)
		return config, nil
	case errors.Is(err, os.ErrNotExist):
		log.Info("No configuration found, writing defaults", "path", path)
		if err := config.Save(); err != nil {
			return nil, err
		}
		return config, nil
	case providedPath != "":
		return nil, fmt.Errorf("failed to load config from provided path: %w", err)
	default:
		log.Error("Failed to load configuration, using defaults", err, "path", path)
		return New(path, log), nil
	}
}
