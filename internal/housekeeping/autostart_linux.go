package housekeeping

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// desktopEntry is an XDG autostart entry.
func desktopEntry(command string) string {
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Exec=%s
X-GNOME-Autostart-enabled=true
NoDisplay=true
`, AutostartName, command)
}

func autostartFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "autostart", "skihide.desktop"), nil
}

func (a *Autostart) Enable(silent bool) error {
	path, err := autostartFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create autostart dir: %w", err)
	}
	return os.WriteFile(path, []byte(desktopEntry(AutostartCommand(a.exe, silent))), 0644)
}

func (a *Autostart) Disable() error {
	path, err := autostartFile()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (a *Autostart) IsEnabled() (bool, error) {
	path, err := autostartFile()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
