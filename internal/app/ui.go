package app

import (
	"errors"
	"fmt"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"skihide/internal/hider"
	"skihide/internal/trigger"
	"skihide/internal/visibility"
)

const feedbackURL = "https://github.com/Akttoer/SkiHide/issues"

func (s *SkiHide) initializeMainUI() {
	s.log.Debug("Initializing main UI")

	s.status = widget.NewLabel("Select a window, then start listening.")

	s.search = widget.NewEntry()
	s.search.SetPlaceHolder("Filter windows...")
	s.search.OnChanged = func(string) { s.applyFilter() }

	s.list = widget.NewList(
		func() int {
			s.mu.RLock()
			defer s.mu.RUnlock()
			return len(s.shown)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			s.mu.RLock()
			if id >= len(s.shown) {
				s.mu.RUnlock()
				return
			}
			w := s.shown[id]
			s.mu.RUnlock()

			text := w.Title
			if s.service.IsHidden(w.Handle) {
				text = "[hidden] " + text
			}
			obj.(*widget.Label).SetText(text)
		},
	)
	s.list.OnSelected = func(id widget.ListItemID) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if id < len(s.shown) {
			s.service.Selection().Set(s.shown[id])
			s.log.Debug("Window selected", "handle", s.shown[id].Handle, "title", s.shown[id].Title)
		}
	}
	s.list.OnUnselected = func(widget.ListItemID) {
		s.service.Selection().Clear()
	}

	refreshBtn := widget.NewButton("Refresh list", s.refreshWindows)
	toggleBtn := widget.NewButton("Hide / show selected", func() {
		s.service.Request(trigger.SourceUI)
	})

	s.hotkey = widget.NewEntry()
	s.hotkey.SetPlaceHolder("e.g. ctrl+alt+h")
	s.hotkey.SetText(s.config.GetHotkey())
	s.hotkey.OnSubmitted = s.setHotkey
	hotkeyBtn := widget.NewButton("Set", func() { s.setHotkey(s.hotkey.Text) })

	s.useMouse = widget.NewCheck("Use mouse side buttons", func(on bool) {
		if on == s.config.GetUseMouse() {
			return
		}
		s.config.SetUseMouse(on)
		s.saveConfig()
		s.restartListening()
	})
	s.useMouse.SetChecked(s.config.GetUseMouse())

	s.listenBtn = widget.NewButton("Start listening", s.toggleListening)
	s.listenBtn.Importance = widget.HighImportance

	hotkeyRow := container.NewBorder(nil, nil, widget.NewLabel("Hotkey:"), hotkeyBtn, s.hotkey)
	top := container.NewVBox(widget.NewLabel("Open windows:"), s.search)
	bottom := container.NewVBox(
		container.NewGridWithColumns(2, refreshBtn, toggleBtn),
		hotkeyRow,
		s.useMouse,
		s.listenBtn,
		s.status,
	)

	s.window.SetMainMenu(s.mainMenu())
	s.window.SetContent(container.NewBorder(top, bottom, nil, nil, s.list))
	s.window.Resize(fyne.NewSize(460, 560))

	s.refreshWindows()
}

func (s *SkiHide) mainMenu() *fyne.MainMenu {
	tools := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Settings", s.showSettings),
		fyne.NewMenuItem("Toolbox", s.showToolbox),
	)
	help := fyne.NewMenu("Help",
		fyne.NewMenuItem("Feedback", s.openFeedback),
		fyne.NewMenuItem("System info", func() {
			dialog.ShowInformation("System info", s.systemInfo(), s.window)
		}),
	)
	if s.debugPanel != nil {
		help.Items = append(help.Items,
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Debug log", s.debugPanel.Show),
		)
	}
	return fyne.NewMainMenu(tools, help)
}

// refreshWindows re-enumerates windows, keeping hidden ones listed and the
// current selection when it still exists.
func (s *SkiHide) refreshWindows() {
	listed, err := s.windows.ListWindows()
	if err != nil {
		s.log.Error("Failed to list windows", err)
		dialog.ShowError(fmt.Errorf("failed to list windows: %w", err), s.window)
		return
	}

	s.mu.Lock()
	s.listed = hider.MergeHidden(listed, s.service.Hidden())
	s.mu.Unlock()

	s.log.Debug("Window list refreshed", "count", len(listed))
	s.applyFilter()
}

func (s *SkiHide) applyFilter() {
	selected := s.service.Selection().Get()

	s.mu.Lock()
	s.shown = hider.FilterWindows(s.listed, s.search.Text)
	index := -1
	for i, w := range s.shown {
		if w.Handle == selected.Handle {
			index = i
			break
		}
	}
	s.mu.Unlock()

	s.list.Refresh()
	if index >= 0 && !selected.IsZero() {
		s.list.Select(index)
	} else {
		s.list.UnselectAll()
	}
}

// onToggle runs on the dispatcher goroutine.
func (s *SkiHide) onToggle(c hider.Change) {
	switch c.Action {
	case visibility.ActionHidden:
		s.status.SetText(fmt.Sprintf("Hidden: %s", c.Window.Title))
	case visibility.ActionRestored:
		s.status.SetText(fmt.Sprintf("Restored: %s", c.Window.Title))
	}
	s.list.Refresh()
}

func (s *SkiHide) setHotkey(text string) {
	if text == "" {
		s.config.SetHotkey("")
		s.saveConfig()
		s.restartListening()
		return
	}

	acc, err := trigger.ParseAccelerator(text)
	if err != nil {
		dialog.ShowError(err, s.window)
		s.hotkey.SetText(s.config.GetHotkey())
		return
	}
	s.hotkey.SetText(acc.String())
	if acc.String() == s.config.GetHotkey() {
		return
	}

	s.config.SetHotkey(acc.String())
	s.saveConfig()
	s.log.Info("Hotkey changed", "hotkey", acc.String())
	s.restartListening()
}

func (s *SkiHide) toggleListening() {
	if s.service.Listening() {
		s.service.Stop()
		s.listenBtn.SetText("Start listening")
		s.status.SetText("Listening stopped.")
		return
	}
	s.startListening()
}

func (s *SkiHide) startListening() {
	if err := s.service.Start(s.config); err != nil {
		if errors.Is(err, hider.ErrNoTrigger) {
			dialog.ShowError(errors.New("set a hotkey or enable the mouse side buttons first"), s.window)
		} else {
			s.log.Error("Failed to start listening", err)
			dialog.ShowError(err, s.window)
		}
		s.listenBtn.SetText("Start listening")
		return
	}
	s.listenBtn.SetText("Stop listening")
	s.status.SetText("Listening.")
}

// restartListening re-registers sources after a trigger setting changed.
func (s *SkiHide) restartListening() {
	if !s.service.Listening() {
		return
	}
	s.service.Stop()
	s.startListening()
}

func (s *SkiHide) openFeedback() {
	dialog.ShowConfirm("Feedback",
		"The feedback page is hosted on GitHub.\n\nOpen it in your browser?",
		func(ok bool) {
			if !ok {
				return
			}
			u, err := url.Parse(feedbackURL)
			if err == nil {
				err = s.fyneApp.OpenURL(u)
			}
			if err != nil {
				s.log.Error("Failed to open feedback page", err)
				dialog.ShowError(err, s.window)
			}
		}, s.window)
}

func (s *SkiHide) saveConfig() {
	if err := s.config.Save(); err != nil {
		s.log.Error("Failed to save configuration", err)
		dialog.ShowError(err, s.window)
	}
}

func (s *SkiHide) onClose() {
	if !s.hasTray {
		dialog.ShowConfirm("Quit", "Quit SkiHide?", func(ok bool) {
			if ok {
				s.quit()
			}
		}, s.window)
		return
	}
	dialog.ShowConfirm("Quit", "Quit SkiHide?\n\nChoose No to keep it running in the tray.", func(ok bool) {
		if ok {
			s.quit()
			return
		}
		s.window.Hide()
		s.log.Info("Main window minimized to tray")
	}, s.window)
}
