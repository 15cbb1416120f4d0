package app

import (
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"skihide/pkg/logger"
)

const maxDebugLines = 1000

// DebugPanel is the log viewer shown in debug mode.
type DebugPanel struct {
	window    fyne.Window
	textArea  *widget.TextGrid
	logger    *logger.Logger
	mu        sync.Mutex
	content   []string
	isVisible bool
}

func NewDebugPanel(a fyne.App, log *logger.Logger) *DebugPanel {
	dp := &DebugPanel{
		logger:  log,
		content: make([]string, 0),
	}

	dp.window = a.NewWindow("SkiHide - Debug log")
	dp.textArea = widget.NewTextGrid()

	testBtn := widget.NewButton("Test log", func() {
		dp.logger.Debug("Test log entry from debug panel")
	})
	clearBtn := widget.NewButton("Clear", dp.Clear)

	content := container.NewBorder(
		container.NewHBox(testBtn, clearBtn),
		nil,
		nil,
		nil,
		container.NewScroll(dp.textArea),
	)

	dp.window.SetContent(content)
	dp.window.Resize(fyne.NewSize(800, 600))
	dp.window.SetCloseIntercept(dp.Hide)

	return dp
}

func (dp *DebugPanel) AddText(text string) {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	dp.content = append(dp.content, text)
	if len(dp.content) > maxDebugLines {
		dp.content = dp.content[len(dp.content)-maxDebugLines:]
	}

	dp.textArea.SetText(strings.Join(dp.content, "\n"))
}

func (dp *DebugPanel) Clear() {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	dp.content = make([]string, 0)
	dp.textArea.SetText("")
}

func (dp *DebugPanel) Show() {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.isVisible = true
	dp.window.Show()
}

func (dp *DebugPanel) Hide() {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.isVisible = false
	dp.window.Hide()
}

func (dp *DebugPanel) IsVisible() bool {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	return dp.isVisible
}

// DebugWriter feeds log lines into the panel.
type DebugWriter struct {
	panel *DebugPanel
}

func NewDebugWriter(panel *DebugPanel) *DebugWriter {
	return &DebugWriter{panel: panel}
}

func (w *DebugWriter) Write(p []byte) (n int, err error) {
	text := strings.TrimSpace(string(p))
	if text != "" {
		w.panel.AddText(text)
	}
	return len(p), nil
}
