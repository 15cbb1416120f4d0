package trigger

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"skihide/pkg/core"
)

const (
	whMouseLL     = 14
	wmXButtonDown = 0x020B
	wmQuit        = 0x0012
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
)

type msg struct {
	hwnd    windows.HWND
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// Only one low-level hook is installed per process; the callback is shared.
var (
	hookMu     sync.Mutex
	hookTarget *MouseButtons
	hookProc   = windows.NewCallback(func(nCode, wParam, lParam uintptr) uintptr {
		if int32(nCode) >= 0 && wParam == wmXButtonDown {
			hookMu.Lock()
			target := hookTarget
			hookMu.Unlock()
			if target != nil {
				target.fire()
			}
		}
		ret, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
		return ret
	})
)

// MouseButtons posts a toggle request for every X1/X2 side-button press.
type MouseButtons struct {
	queue *Queue
	log   core.Logger

	mu       sync.Mutex
	threadID uint32
	done     chan struct{}
}

func NewMouseButtons(queue *Queue, log core.Logger) *MouseButtons {
	return &MouseButtons{queue: queue, log: log}
}

func (m *MouseButtons) fire() {
	if !m.queue.Post(SourceMouse) {
		m.log.Warn("Dropped mouse trigger, queue full")
	}
}

// Start installs the hook on a dedicated OS thread running a message loop.
func (m *MouseButtons) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done != nil {
		return nil
	}

	hookMu.Lock()
	if hookTarget != nil {
		hookMu.Unlock()
		return fmt.Errorf("mouse hook already installed")
	}
	hookTarget = m
	hookMu.Unlock()

	started := make(chan hookStart, 1)
	done := make(chan struct{})
	go m.loop(started, done)

	res := <-started
	if res.err != nil {
		hookMu.Lock()
		hookTarget = nil
		hookMu.Unlock()
		return res.err
	}
	m.threadID = res.threadID
	m.done = done
	m.log.Info("Mouse side-button hook installed")
	return nil
}

type hookStart struct {
	threadID uint32
	err      error
}

func (m *MouseButtons) loop(started chan<- hookStart, done chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(done)

	hook, _, err := procSetWindowsHookExW.Call(whMouseLL, hookProc, 0, 0)
	if hook == 0 {
		started <- hookStart{err: fmt.Errorf("SetWindowsHookExW failed: %w", err)}
		return
	}
	defer procUnhookWindowsHookEx.Call(hook)

	started <- hookStart{threadID: windows.GetCurrentThreadId()}

	var message msg
	for {
		r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&message)), 0, 0, 0)
		// 0 is WM_QUIT, -1 is an error; both end the loop.
		if r == 0 || int32(r) == -1 {
			return
		}
	}
}

// Stop removes the hook and waits for the message loop to exit.
func (m *MouseButtons) Stop() error {
	m.mu.Lock()
	done := m.done
	tid := m.threadID
	m.done = nil
	m.mu.Unlock()
	if done == nil {
		return nil
	}

	procPostThreadMessageW.Call(uintptr(tid), wmQuit, 0, 0)
	<-done

	hookMu.Lock()
	hookTarget = nil
	hookMu.Unlock()
	m.log.Info("Mouse side-button hook removed")
	return nil
}
