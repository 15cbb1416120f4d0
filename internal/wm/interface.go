package wm

import "fmt"

// Handle is the platform window identifier (HWND on Windows, X11 window id).
// It is only meaningful while the window exists.
type Handle uintptr

func (h Handle) String() string {
	return fmt.Sprintf("0x%X", uintptr(h))
}

type WindowManager interface {
	// ListWindows returns the top-level windows eligible for hiding
	ListWindows() ([]Window, error)
	// Show restores a previously hidden window to its prior placement
	Show(Handle) error
	// Hide removes the window from screen and taskbar
	Hide(Handle) error
	// Name returns the WM name for logging/display
	Name() string
}

type Window struct {
	Handle Handle `json:"handle" yaml:"handle"`
	Title  string `json:"title"  yaml:"title"`
	PID    int    `json:"pid"    yaml:"pid"`
}

// IsZero reports whether w is the empty selection.
func (w Window) IsZero() bool {
	return w.Handle == 0
}
