package config

import (
	"sync"
	"time"

	"skihide/internal/wm"
	"skihide/pkg/logger"
)

// Memory-clean interval units as stored in config.json.
const (
	UnitMinutes = "minutes"
	UnitHours   = "hours"
)

// Bounds for the memory-clean interval value.
const (
	MinMemCleanValue = 1
	MaxMemCleanValue = 999
)

const DefaultUpdateURL = "https://flvsrttb.cn-nb1.rainapp.top/v1"

// Config holds the application configuration. The UI thread writes
// settings while trigger handling reads them, so access is guarded.
type Config struct {
	mu sync.RWMutex

	hotkey             string
	useMouse           bool
	muteAfterHide      bool
	autostartEnabled   bool
	silentStartEnabled bool
	memCleanEnabled    bool
	memCleanValue      int
	memCleanUnit       string
	privacyAccepted    bool
	updateURL          string
	excludeTitles      []string

	// Internal fields
	path string
	log  *logger.Logger
}

// New creates a Config with defaults, bound to path.
func New(path string, log *logger.Logger) *Config {
	return &Config{
		silentStartEnabled: true,
		memCleanValue:      30,
		memCleanUnit:       UnitMinutes,
		updateURL:          DefaultUpdateURL,
		excludeTitles:      append([]string(nil), wm.DefaultExcludeTitles...),
		path:               path,
		log:                log,
	}
}

// GetPath returns the file the config is loaded from and saved to.
func (c *Config) GetPath() string {
	return c.path
}

func (c *Config) GetHotkey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hotkey
}

func (c *Config) SetHotkey(hotkey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hotkey = hotkey
}

func (c *Config) GetUseMouse() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.useMouse
}

func (c *Config) SetUseMouse(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.useMouse = v
}

// GetMuteAfterHide reports whether audio is muted while windows are hidden.
func (c *Config) GetMuteAfterHide() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.muteAfterHide
}

func (c *Config) SetMuteAfterHide(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muteAfterHide = v
}

func (c *Config) GetAutostartEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.autostartEnabled
}

func (c *Config) SetAutostartEnabled(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autostartEnabled = v
}

func (c *Config) GetSilentStartEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.silentStartEnabled
}

func (c *Config) SetSilentStartEnabled(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.silentStartEnabled = v
}

func (c *Config) GetPrivacyAccepted() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.privacyAccepted
}

func (c *Config) SetPrivacyAccepted(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.privacyAccepted = v
}

// GetMemClean returns the scheduled memory-clean settings.
func (c *Config) GetMemClean() (enabled bool, value int, unit string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.memCleanEnabled, c.memCleanValue, c.memCleanUnit
}

// SetMemClean stores the schedule, clamping value and normalizing unit.
func (c *Config) SetMemClean(enabled bool, value int, unit string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.memCleanEnabled = enabled
	c.memCleanValue = clampMemCleanValue(value)
	c.memCleanUnit = NormalizeUnit(unit)
}

// GetMemCleanInterval converts the schedule to a duration.
func (c *Config) GetMemCleanInterval() time.Duration {
	_, value, unit := c.GetMemClean()
	return MemCleanInterval(value, unit)
}

func (c *Config) GetUpdateURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updateURL
}

// GetExcludeTitles returns a copy of the window title blacklist.
func (c *Config) GetExcludeTitles() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.excludeTitles...)
}

// MemCleanInterval turns a value/unit pair into a duration.
func MemCleanInterval(value int, unit string) time.Duration {
	value = clampMemCleanValue(value)
	if NormalizeUnit(unit) == UnitHours {
		return time.Duration(value) * time.Hour
	}
	return time.Duration(value) * time.Minute
}

// NormalizeUnit maps stored unit names, including the legacy Chinese
// labels, to UnitMinutes or UnitHours.
func NormalizeUnit(unit string) string {
	switch unit {
	case UnitHours, "hour", "h", "小时":
		return UnitHours
	default:
		return UnitMinutes
	}
}

func clampMemCleanValue(v int) int {
	if v == 0 {
		return 30
	}
	if v < MinMemCleanValue {
		return MinMemCleanValue
	}
	if v > MaxMemCleanValue {
		return MaxMemCleanValue
	}
	return v
}
