//go:build linux

package wm

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"skihide/pkg/core"
)

// X11 drives windows through xdotool; hiding unmaps the window.
type X11 struct {
	log    core.Logger
	filter *Filter
}

func NewX11(log core.Logger, excludeTitles []string) (*X11, error) {
	// Check if xdotool is available
	if _, err := exec.LookPath("xdotool"); err != nil {
		return nil, fmt.Errorf("xdotool is required for X11 support but was not found: %w", err)
	}
	return &X11{
		log:    log,
		filter: NewFilter(excludeTitles, os.Getpid()),
	}, nil
}

func (x *X11) Name() string {
	return "X11"
}

func (x *X11) ListWindows() ([]Window, error) {
	out, err := exec.Command("xdotool", "search", "--onlyvisible", "--name", ".").Output()
	if err != nil {
		// xdotool exits 1 when nothing matches
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("xdotool search failed: %w", err)
	}

	ids := parseWindowIDs(string(out))
	candidates := make([]Candidate, 0, len(ids))
	for _, id := range ids {
		c := Candidate{Handle: id, Visible: true}

		titleOut, err := exec.Command("xdotool", "getwindowname", id.decimal()).Output()
		if err != nil {
			x.log.Debug("Skipping window without name", "handle", id, "error", err)
			continue
		}
		c.Title = strings.TrimSpace(string(titleOut))

		if pidOut, err := exec.Command("xdotool", "getwindowpid", id.decimal()).Output(); err == nil {
			c.PID, _ = strconv.Atoi(strings.TrimSpace(string(pidOut)))
		}

		if geoOut, err := exec.Command("xdotool", "getwindowgeometry", "--shell", id.decimal()).Output(); err == nil {
			c.Width, c.Height = parseGeometry(string(geoOut))
		}

		candidates = append(candidates, c)
	}

	windows := x.filter.Apply(candidates)
	x.log.Debug("Enumerated windows", "total", len(ids), "eligible", len(windows))
	return windows, nil
}

func (x *X11) Show(h Handle) error {
	return x.run("windowmap", h)
}

func (x *X11) Hide(h Handle) error {
	return x.run("windowunmap", h)
}

func (x *X11) run(action string, h Handle) error {
	if h == 0 {
		return fmt.Errorf("cannot %s: %w", action, ErrNoWindow)
	}
	if output, err := exec.Command("xdotool", action, h.decimal()).CombinedOutput(); err != nil {
		x.log.Debug("xdotool failed", "action", action, "handle", h, "output", string(output))
		return fmt.Errorf("xdotool %s %s: %w", action, h, err)
	}
	return nil
}
