package app

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"skihide/pkg/config"
)

var unitLabels = map[string]string{
	config.UnitMinutes: "minutes",
	config.UnitHours:   "hours",
}

func unitFromLabel(label string) string {
	for unit, l := range unitLabels {
		if l == label {
			return unit
		}
	}
	return config.UnitMinutes
}

func validateMemCleanValue(text string) error {
	n, err := strconv.Atoi(text)
	if err != nil || n < config.MinMemCleanValue || n > config.MaxMemCleanValue {
		return fmt.Errorf("enter a number between %d and %d", config.MinMemCleanValue, config.MaxMemCleanValue)
	}
	return nil
}

func (s *SkiHide) showSettings() {
	mute := widget.NewCheck("", nil)
	mute.SetChecked(s.config.GetMuteAfterHide())
	if !s.audioReady {
		mute.Disable()
	}

	silent := widget.NewCheck("", nil)
	silent.SetChecked(s.config.GetSilentStartEnabled())

	// Silent start only matters when SkiHide starts with the session.
	autostart := widget.NewCheck("", func(on bool) {
		if on {
			silent.Enable()
		} else {
			silent.Disable()
		}
	})
	registered := s.config.GetAutostartEnabled()
	if s.autostart != nil {
		registered = s.autostart.Registered(registered, s.log)
	}
	autostart.SetChecked(registered)
	if !registered {
		silent.Disable()
	}
	if s.autostart == nil {
		autostart.Disable()
	}

	enabled, value, unit := s.config.GetMemClean()
	memValue := widget.NewEntry()
	memValue.SetText(strconv.Itoa(value))
	memValue.Validator = validateMemCleanValue
	memUnit := widget.NewSelect([]string{unitLabels[config.UnitMinutes], unitLabels[config.UnitHours]}, nil)
	memUnit.SetSelected(unitLabels[unit])

	memEnabled := widget.NewCheck("", func(on bool) {
		if on {
			memValue.Enable()
			memUnit.Enable()
		} else {
			memValue.Disable()
			memUnit.Disable()
		}
	})
	memEnabled.SetChecked(enabled)
	if !enabled {
		memValue.Disable()
		memUnit.Disable()
	}

	items := []*widget.FormItem{
		widget.NewFormItem("Mute after hide", mute),
		widget.NewFormItem("Start with system", autostart),
		widget.NewFormItem("Start silently", silent),
		widget.NewFormItem("Scheduled memory clean", memEnabled),
		widget.NewFormItem("Every", memValue),
		widget.NewFormItem("Unit", memUnit),
	}

	form := dialog.NewForm("Settings", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		n, err := strconv.Atoi(memValue.Text)
		if err != nil {
			n = 30
		}
		s.applySettings(mute.Checked, autostart.Checked, silent.Checked, memEnabled.Checked, n, unitFromLabel(memUnit.Selected))
	}, s.window)
	form.Show()
}

func (s *SkiHide) applySettings(mute, autostart, silent, memEnabled bool, memValue int, memUnit string) {
	s.config.SetMuteAfterHide(mute)
	s.config.SetSilentStartEnabled(silent)
	s.config.SetMemClean(memEnabled, memValue, memUnit)

	if s.autostart != nil {
		if err := s.autostart.Set(autostart, silent); err != nil {
			s.log.Error("Failed to apply autostart", err, "enabled", autostart)
			dialog.ShowError(fmt.Errorf("failed to change autostart: %w", err), s.window)
		} else {
			s.config.SetAutostartEnabled(autostart)
		}
	}

	s.saveConfig()

	enabled, _, _ := s.config.GetMemClean()
	s.scheduler.Apply(enabled, s.config.GetMemCleanInterval())
	s.log.Info("Settings applied",
		"mute_after_hide", mute,
		"autostart", s.config.GetAutostartEnabled(),
		"silent_start", silent,
		"mem_clean", enabled)
}
