package housekeeping

import (
	"os"
	"strings"

	"skihide/pkg/core"
)

const (
	AutostartName = "SkiHide"
	SilentFlag    = "--silent"
)

// AutostartCommand is the command line registered for login. Paths with
// spaces are quoted unless already quoted.
func AutostartCommand(exe string, silent bool) string {
	if strings.Contains(exe, " ") && !(strings.HasPrefix(exe, `"`) && strings.HasSuffix(exe, `"`)) {
		exe = `"` + exe + `"`
	}
	if silent {
		return exe + " " + SilentFlag
	}
	return exe
}

// Autostart registers the running executable to start at login.
type Autostart struct {
	exe string
}

// NewAutostart resolves the running executable.
func NewAutostart() (*Autostart, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	return &Autostart{exe: exe}, nil
}

// Set enables or disables autostart in one call.
func (a *Autostart) Set(enabled, silent bool) error {
	if enabled {
		return a.Enable(silent)
	}
	return a.Disable()
}

// Registered reports whether the login entry exists, so entries removed
// outside SkiHide show up as disabled. configured is returned when the
// entry cannot be read.
func (a *Autostart) Registered(configured bool, log core.Logger) bool {
	enabled, err := a.IsEnabled()
	if err != nil {
		if log != nil {
			log.Warn("Failed to read autostart entry", "error", err, "configured", configured)
		}
		return configured
	}
	return enabled
}
