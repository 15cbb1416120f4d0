package app

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

// setupTray installs the tray menu. It reports false when the driver has
// no system tray, in which case closing the window must not hide it.
func (s *SkiHide) setupTray() bool {
	desk, ok := s.fyneApp.(desktop.App)
	if !ok {
		s.log.Warn("System tray unavailable")
		return false
	}

	show := fyne.NewMenuItem("Show", s.showMain)
	quit := fyne.NewMenuItem("Quit", s.quit)
	quit.IsQuit = true

	desk.SetSystemTrayMenu(fyne.NewMenu("SkiHide", show, quit))
	desk.SetSystemTrayIcon(theme.VisibilityOffIcon())
	s.log.Debug("Tray icon created")
	return true
}
