package wm

import (
	"errors"
	"fmt"

	"skihide/pkg/core"
)

var (
	// ErrNoWindow is returned when a handle no longer names a window.
	ErrNoWindow = errors.New("window does not exist")
	// ErrUnsupported is returned on platforms without a backend.
	ErrUnsupported = errors.New("window control is not supported on this platform")
)

// Manager wraps the backend for the current session
type Manager struct {
	wm  WindowManager
	log core.Logger
}

// NewManager picks the window backend for this platform
func NewManager(log core.Logger, excludeTitles []string) (*Manager, error) {
	backend, err := newBackend(log, excludeTitles)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize window control: %w", err)
	}

	log.Info("Window manager initialized", "name", backend.Name())
	return &Manager{wm: backend, log: log}, nil
}

// NewManagerWith wraps an explicit backend.
func NewManagerWith(backend WindowManager, log core.Logger) *Manager {
	return &Manager{wm: backend, log: log}
}

func (m *Manager) ListWindows() ([]Window, error) {
	return m.wm.ListWindows()
}

func (m *Manager) Show(h Handle) error {
	m.log.Debug("Showing window", "handle", h)
	return m.wm.Show(h)
}

func (m *Manager) Hide(h Handle) error {
	m.log.Debug("Hiding window", "handle", h)
	return m.wm.Hide(h)
}

// GetWMName returns the name of the current window manager
func (m *Manager) GetWMName() string {
	return m.wm.Name()
}
