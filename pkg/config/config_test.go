package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skihide/internal/wm"
	"skihide/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(logger.WithWriter(io.Discard))
	require.NoError(t, err)
	return log
}

func TestDefaults(t *testing.T) {
	c := New("unused.json", testLogger(t))

	assert.Empty(t, c.GetHotkey())
	assert.False(t, c.GetMuteAfterHide())
	assert.True(t, c.GetSilentStartEnabled())
	enabled, value, unit := c.GetMemClean()
	assert.False(t, enabled)
	assert.Equal(t, 30, value)
	assert.Equal(t, UnitMinutes, unit)
	assert.Equal(t, DefaultUpdateURL, c.GetUpdateURL())
	assert.Equal(t, wm.DefaultExcludeTitles, c.GetExcludeTitles())
}

func TestLoadLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	legacy := `{
  "hotkey": "ctrl+alt+h",
  "use_mouse": true,
  "mute_after_hide": true,
  "mem_clean_enabled": true,
  "mem_clean_value": 0,
  "mem_clean_unit": "小时",
  "privacy_accepted": true
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	c := New(path, testLogger(t))
	require.NoError(t, c.LoadFromFile(path))

	assert.Equal(t, "ctrl+alt+h", c.GetHotkey())
	assert.True(t, c.GetUseMouse())
	assert.True(t, c.GetMuteAfterHide())
	assert.True(t, c.GetPrivacyAccepted())
	assert.True(t, c.GetSilentStartEnabled(), "absent keys keep defaults")

	enabled, value, unit := c.GetMemClean()
	assert.True(t, enabled)
	assert.Equal(t, 30, value)
	assert.Equal(t, UnitHours, unit)
	assert.Equal(t, 30*time.Hour, c.GetMemCleanInterval())
}

func TestSaveRoundTripIsAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	c := New(path, testLogger(t))
	c.SetHotkey("alt+f9")
	c.SetMuteAfterHide(true)
	c.SetMemClean(true, 5000, "hours")

	require.NoError(t, c.Save())
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	var raw map[string]interface{}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "alt+f9", raw["hotkey"])
	assert.EqualValues(t, MaxMemCleanValue, raw["mem_clean_value"])

	reloaded := New(path, testLogger(t))
	require.NoError(t, reloaded.LoadFromFile(path))
	assert.Equal(t, "alt+f9", reloaded.GetHotkey())
	assert.True(t, reloaded.GetMuteAfterHide())
	enabled, value, unit := reloaded.GetMemClean()
	assert.True(t, enabled)
	assert.Equal(t, MaxMemCleanValue, value)
	assert.Equal(t, UnitHours, unit)
}

func TestSaveKeepsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"language":"zh_CN","hotkey":"f1"}`), 0644))

	c := New(path, testLogger(t))
	require.NoError(t, c.LoadFromFile(path))
	c.SetHotkey("f2")
	require.NoError(t, c.Save())

	var raw map[string]interface{}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "zh_CN", raw["language"])
	assert.Equal(t, "f2", raw["hotkey"])
}

func TestFindConfigCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	c, err := FindConfig(path, testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, path, c.GetPath())
	assert.FileExists(t, path)
}

func TestFindConfigRejectsBrokenProvidedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := FindConfig(path, testLogger(t))
	assert.Error(t, err)
}

func TestMemCleanInterval(t *testing.T) {
	assert.Equal(t, 30*time.Minute, MemCleanInterval(30, "分钟"))
	assert.Equal(t, 2*time.Hour, MemCleanInterval(2, UnitHours))
	assert.Equal(t, time.Minute, MemCleanInterval(-4, UnitMinutes))
	assert.Equal(t, 999*time.Minute, MemCleanInterval(1200, "weeks"))
}
