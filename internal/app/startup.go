package app

import (
	"context"
	"fmt"
	"net/url"

	"fyne.io/fyne/v2/dialog"

	"skihide/internal/update"
	"skihide/pkg/notify"
)

const privacyURL = "https://skihide.xyz/guide/privacy"

// checkPrivacy asks for acceptance on first run. Declining quits.
func (s *SkiHide) checkPrivacy() {
	if s.config.GetPrivacyAccepted() {
		return
	}

	s.showMain()
	msg := fmt.Sprintf("Before using SkiHide, please read and accept the privacy policy and disclaimer:\n\n%s\n\n"+
		"Choose Yes if you have read and agree. Choose No to exit.", privacyURL)
	dialog.ShowConfirm("SkiHide - Privacy policy", msg, func(ok bool) {
		if !ok {
			s.log.Info("Privacy policy declined, exiting")
			s.quit()
			return
		}
		s.config.SetPrivacyAccepted(true)
		s.saveConfig()
		s.log.Info("Privacy policy accepted")
	}, s.window)
}

func (s *SkiHide) checkForUpdates(ctx context.Context) {
	s.log.Info("Checking for updates")

	checker := update.NewChecker(s.config.GetUpdateURL(), update.CurrentBuild())
	res, err := checker.Check(ctx)
	if err != nil {
		s.log.Warn("Update check failed", "error", err)
		return
	}
	if !res.Newer {
		s.log.Info("Already up to date", "build", res.CurrentBuild)
		return
	}

	s.log.Info("New version found",
		"version", res.Release.Version,
		"build", int64(res.Release.Build),
		"current_version", update.Version,
		"current_build", res.CurrentBuild)
	s.notifier.Show(fmt.Sprintf("SkiHide %s is available", res.Release.Version), notify.Info)

	msg := fmt.Sprintf("SkiHide %s is available.\n\nChanges:\n%s\n\nOpen the download page?", res.Release.Version, res.Release.Changelog)
	dialog.ShowConfirm("Update available", msg, func(ok bool) {
		if !ok {
			s.log.Info("Update declined")
			return
		}
		u, err := url.Parse(res.Release.DownloadURL)
		if err == nil {
			err = s.fyneApp.OpenURL(u)
		}
		if err != nil {
			s.log.Error("Failed to open download page", err, "url", res.Release.DownloadURL)
			dialog.ShowError(err, s.window)
		}
	}, s.window)
}
