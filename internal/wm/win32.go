//go:build windows

package wm

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"skihide/pkg/core"
)

const (
	swHide    = 0
	swRestore = 9

	wsChild        = 0x40000000
	wsExToolWindow = 0x00000080
	wsExNoActivate = 0x08000000
	maxTitleLength = 512
)

var (
	gwlStyle   int32 = -16
	gwlExStyle int32 = -20
)

var (
	user32              = windows.NewLazySystemDLL("user32.dll")
	procShowWindow      = user32.NewProc("ShowWindow")
	procGetWindowLongW  = user32.NewProc("GetWindowLongW")
	procGetWindowRect   = user32.NewProc("GetWindowRect")
	procIsIconic        = user32.NewProc("IsIconic")
	procGetParent       = user32.NewProc("GetParent")
	procGetWindowTextLn = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW  = user32.NewProc("GetWindowTextW")
)

// EnumWindows callbacks are a scarce resource, so one callback is shared and
// enumeration is serialized.
var (
	enumMu      sync.Mutex
	enumResults []windows.HWND
	enumProc    = windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		enumResults = append(enumResults, hwnd)
		return 1
	})
)

// Win32 hides and restores top-level windows through user32.
type Win32 struct {
	log    core.Logger
	filter *Filter
}

func NewWin32(log core.Logger, excludeTitles []string) (*Win32, error) {
	if err := procShowWindow.Find(); err != nil {
		return nil, fmt.Errorf("user32 ShowWindow unavailable: %w", err)
	}
	return &Win32{
		log:    log,
		filter: NewFilter(excludeTitles, os.Getpid()),
	}, nil
}

func (w *Win32) Name() string {
	return "Win32"
}

func (w *Win32) ListWindows() ([]Window, error) {
	enumMu.Lock()
	enumResults = enumResults[:0]
	err := windows.EnumWindows(enumProc, nil)
	handles := append([]windows.HWND(nil), enumResults...)
	enumMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("EnumWindows failed: %w", err)
	}

	candidates := make([]Candidate, 0, len(handles))
	for _, hwnd := range handles {
		if !windows.IsWindow(hwnd) {
			continue
		}
		candidates = append(candidates, w.describe(hwnd))
	}

	windowsFound := w.filter.Apply(candidates)
	w.log.Debug("Enumerated windows", "total", len(handles), "eligible", len(windowsFound))
	return windowsFound, nil
}

func (w *Win32) describe(hwnd windows.HWND) Candidate {
	c := Candidate{
		Handle:  Handle(hwnd),
		Visible: windows.IsWindowVisible(hwnd),
	}
	if !c.Visible {
		return c
	}

	c.Title = windowText(hwnd)

	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err == nil {
		c.PID = int(pid)
	}

	style, _, _ := procGetWindowLongW.Call(uintptr(hwnd), uintptr(gwlStyle))
	exStyle, _, _ := procGetWindowLongW.Call(uintptr(hwnd), uintptr(gwlExStyle))
	c.Child = uint32(style)&wsChild != 0
	c.ToolWindow = uint32(exStyle)&wsExToolWindow != 0
	c.NoActivate = uint32(exStyle)&wsExNoActivate != 0

	var rect windows.Rect
	if ok, _, _ := procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&rect))); ok != 0 {
		c.Width = int(rect.Right - rect.Left)
		c.Height = int(rect.Bottom - rect.Top)
	}
	iconic, _, _ := procIsIconic.Call(uintptr(hwnd))
	c.Minimized = iconic != 0

	parent, _, _ := procGetParent.Call(uintptr(hwnd))
	c.Owned = parent != 0

	return c
}

func windowText(hwnd windows.HWND) string {
	n, _, _ := procGetWindowTextLn.Call(uintptr(hwnd))
	if n == 0 {
		return ""
	}
	size := int32(n) + 1
	if size > maxTitleLength {
		size = maxTitleLength
	}
	buf := make([]uint16, size)
	length, _, _ := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(size))
	if length == 0 || int(length) > len(buf) {
		return ""
	}
	return syscall.UTF16ToString(buf[:length])
}

func (w *Win32) Show(h Handle) error {
	return w.showWindow(h, swRestore)
}

func (w *Win32) Hide(h Handle) error {
	return w.showWindow(h, swHide)
}

func (w *Win32) showWindow(h Handle, cmd uintptr) error {
	hwnd := windows.HWND(h)
	if !windows.IsWindow(hwnd) {
		return fmt.Errorf("window %s: %w", h, ErrNoWindow)
	}
	// The return value is the previous visibility, not a success flag.
	procShowWindow.Call(uintptr(hwnd), cmd)
	return nil
}
