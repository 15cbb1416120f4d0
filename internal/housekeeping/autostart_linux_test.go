package housekeeping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutostartDesktopFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := &Autostart{exe: "/opt/ski hide/skihide"}

	enabled, err := a.IsEnabled()
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, a.Set(true, true))
	enabled, err = a.IsEnabled()
	require.NoError(t, err)
	assert.True(t, enabled)

	data, err := os.ReadFile(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "autostart", "skihide.desktop"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `Exec="/opt/ski hide/skihide" --silent`)

	require.NoError(t, a.Set(false, true))
	require.NoError(t, a.Disable())
	enabled, err = a.IsEnabled()
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestAutostartRegisteredFollowsDesktopFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := &Autostart{exe: "/usr/bin/skihide"}

	assert.False(t, a.Registered(true, nil), "entry removed outside the app")

	require.NoError(t, a.Enable(false))
	assert.True(t, a.Registered(false, nil))
}

func TestAutostartRegisteredFallsBackToConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "autostart"), []byte("not a dir"), 0644))
	a := &Autostart{exe: "/usr/bin/skihide"}

	_, err := a.IsEnabled()
	require.Error(t, err)
	assert.True(t, a.Registered(true, nil))
	assert.False(t, a.Registered(false, nil))
}
