//go:build windows

package wm

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"

	"skihide/pkg/core"
)

func TestWindowTextInvalidHandle(t *testing.T) {
	assert.Empty(t, windowText(0))
}

func TestWindowTextMatchesTitleLength(t *testing.T) {
	enumMu.Lock()
	enumResults = enumResults[:0]
	err := windows.EnumWindows(enumProc, nil)
	handles := append([]windows.HWND(nil), enumResults...)
	enumMu.Unlock()
	require.NoError(t, err)
	require.NotEmpty(t, handles)

	titled := 0
	for _, hwnd := range handles {
		n, _, _ := procGetWindowTextLn.Call(uintptr(hwnd))
		if n == 0 || n >= maxTitleLength {
			continue
		}
		title := windowText(hwnd)
		if title == "" {
			// Closed between the two calls.
			continue
		}
		titled++
		assert.LessOrEqual(t, len(utf16.Encode([]rune(title))), int(n), "handle %d", hwnd)
	}
	assert.NotZero(t, titled, "expected at least one titled top-level window")
}

func TestWin32ListWindowsHaveTitles(t *testing.T) {
	w, err := NewWin32(core.Nop{}, DefaultExcludeTitles)
	require.NoError(t, err)

	list, err := w.ListWindows()
	require.NoError(t, err)
	for _, win := range list {
		assert.NotEmpty(t, win.Title, "handle %s", win.Handle)
	}
}
