package app

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"skihide/internal/housekeeping"
)

func (s *SkiHide) showToolbox() {
	warning := widget.NewLabel("These tools may affect system stability. Use with care.")
	warning.Wrapping = fyne.TextWrapWord

	content := container.NewVBox(
		warning,
		widget.NewButton("Clean memory", s.confirmAndCleanMemory),
		widget.NewButton("Clean temp files", s.confirmAndCleanTemp),
		widget.NewSeparator(),
		widget.NewButton("Don't click", s.dangerButton),
	)
	dialog.ShowCustom("Toolbox", "Close", content, s.window)
}

func (s *SkiHide) confirmAndCleanMemory() {
	msg := "This asks the system to reclaim the working set of running processes.\n\n" +
		"Some programs may stutter briefly while they reload.\n\nContinue?"
	dialog.ShowConfirm("Clean memory", msg, func(ok bool) {
		if !ok {
			return
		}
		go func() {
			cleaned, failed, err := housekeeping.TrimWorkingSets(s.log)
			if err != nil {
				s.log.Error("Memory clean failed", err)
				dialog.ShowError(err, s.window)
				return
			}
			dialog.ShowInformation("Memory cleaned", fmt.Sprintf("Succeeded: %d\nFailed: %d", cleaned, failed), s.window)
		}()
	}, s.window)
}

func (s *SkiHide) confirmAndCleanTemp() {
	dir := os.TempDir()
	msg := fmt.Sprintf("This deletes the contents of %s.\n\n"+
		"Files in use by running programs are skipped.\n\nContinue?", dir)
	dialog.ShowConfirm("Clean temp files", msg, func(ok bool) {
		if !ok {
			return
		}
		go func() {
			report, err := housekeeping.CleanTemp(dir, s.log)
			if err != nil {
				s.log.Error("Temp cleanup failed", err)
				dialog.ShowError(err, s.window)
				return
			}
			dialog.ShowInformation("Temp files cleaned",
				fmt.Sprintf("Files deleted: %d\nEmpty folders deleted: %d\nFailed or skipped: %d", report.Files, report.Dirs, report.Failed),
				s.window)
		}()
	}, s.window)
}

func (s *SkiHide) dangerButton() {
	dialog.ShowConfirm("Don't click", "Are you sure you want to click this?\n\nSomething unexpected may happen.", func(ok bool) {
		if ok {
			dialog.ShowInformation("Continue", "You chose to continue...\n(nothing happens)", s.window)
		}
	}, s.window)
}
