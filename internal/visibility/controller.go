// Package visibility tracks the windows SkiHide has hidden and mutes the
// system audio for as long as at least one of them stays hidden.
//
// A Controller has a single writer: every call must come from the same
// goroutine (see hider.Service). It does no locking of its own.
package visibility

import (
	"skihide/internal/wm"
	"skihide/pkg/core"
)

// WindowControl shows and hides windows by handle.
type WindowControl interface {
	Show(wm.Handle) error
	Hide(wm.Handle) error
}

// AudioControl is the default output endpoint. Volume is a scalar in [0,1].
type AudioControl interface {
	Mute() (bool, error)
	SetMute(bool) error
	Volume() (float32, error)
	SetVolume(float32) error
}

// Settings is the part of the configuration the controller consults.
type Settings interface {
	GetMuteAfterHide() bool
}

// Action is what Toggle did to the window.
type Action int

const (
	ActionHidden Action = iota + 1
	ActionRestored
)

func (a Action) String() string {
	switch a {
	case ActionHidden:
		return "hidden"
	case ActionRestored:
		return "restored"
	default:
		return "unknown"
	}
}

// audioSnapshot is taken when the first window of an episode is hidden.
// originalMuted and savedVolume may be stale once mutedByApp is false.
type audioSnapshot struct {
	mutedByApp    bool
	originalMuted bool
	savedVolume   float32
	hasVolume     bool
}

type Controller struct {
	windows  WindowControl
	audio    AudioControl
	settings Settings
	log      core.Logger

	hidden   map[wm.Handle]string
	snapshot audioSnapshot
}

// NewController wires the controller. audio may be nil when the host has
// no usable output device; audio handling is then skipped entirely.
func NewController(windows WindowControl, audio AudioControl, settings Settings, log core.Logger) *Controller {
	if log == nil {
		log = core.Nop{}
	}
	return &Controller{
		windows:  windows,
		audio:    audio,
		settings: settings,
		log:      log,
		hidden:   make(map[wm.Handle]string),
	}
}

// Toggle hides the window if SkiHide has not hidden it, restores it
// otherwise. It never fails: window and audio errors are logged and the
// bookkeeping proceeds as if the call succeeded.
func (c *Controller) Toggle(h wm.Handle, title string) Action {
	if _, ok := c.hidden[h]; ok {
		if err := c.windows.Show(h); err != nil {
			c.log.Warn("Failed to show window", "handle", h, "title", title, "error", err)
		}
		delete(c.hidden, h)
		c.log.Info("Window restored", "handle", h, "title", title, "still_hidden", len(c.hidden))

		if len(c.hidden) == 0 {
			c.restoreAudioIfNeeded()
		}
		return ActionRestored
	}

	if err := c.windows.Hide(h); err != nil {
		c.log.Warn("Failed to hide window", "handle", h, "title", title, "error", err)
	}
	c.hidden[h] = title
	c.log.Info("Window hidden", "handle", h, "title", title, "hidden", len(c.hidden))

	if len(c.hidden) == 1 {
		c.muteAudioIfNeeded()
	}
	return ActionHidden
}

func (c *Controller) muteAudioIfNeeded() {
	if c.settings == nil || !c.settings.GetMuteAfterHide() {
		return
	}
	if c.audio == nil {
		return
	}
	if c.snapshot.mutedByApp {
		return
	}

	muted, err := c.audio.Mute()
	if err != nil {
		c.log.Error("Failed to read mute state", err)
		return
	}

	volume, err := c.audio.Volume()
	if err != nil {
		c.log.Warn("Failed to read volume, it will not be restored", "error", err)
	}
	c.snapshot.originalMuted = muted
	c.snapshot.savedVolume = volume
	c.snapshot.hasVolume = err == nil

	// Already muted by the user: leave ownership with them.
	if muted {
		c.log.Debug("Audio already muted, not taking ownership")
		return
	}

	if err := c.audio.SetMute(true); err != nil {
		c.log.Error("Failed to mute audio", err)
		return
	}
	c.snapshot.mutedByApp = true
	c.log.Info("Audio muted while windows are hidden", "saved_volume", c.snapshot.savedVolume)
}

func (c *Controller) restoreAudioIfNeeded() {
	if c.audio == nil || !c.snapshot.mutedByApp {
		return
	}

	// On failure ownership is kept so the next episode end retries.
	if err := c.audio.SetMute(c.snapshot.originalMuted); err != nil {
		c.log.Error("Failed to restore mute state", err, "muted", c.snapshot.originalMuted)
		return
	}
	// Some drivers move the level when mute flips.
	if c.snapshot.hasVolume {
		if err := c.audio.SetVolume(c.snapshot.savedVolume); err != nil {
			c.log.Error("Failed to restore volume", err, "volume", c.snapshot.savedVolume)
		}
	}
	c.snapshot.mutedByApp = false
	c.log.Info("Audio restored", "muted", c.snapshot.originalMuted)
}

// IsHidden reports whether the controller is holding h hidden.
func (c *Controller) IsHidden(h wm.Handle) bool {
	_, ok := c.hidden[h]
	return ok
}

// Len is the number of windows currently hidden.
func (c *Controller) Len() int {
	return len(c.hidden)
}

// Hidden returns a copy of the hidden set.
func (c *Controller) Hidden() map[wm.Handle]string {
	out := make(map[wm.Handle]string, len(c.hidden))
	for h, title := range c.hidden {
		out[h] = title
	}
	return out
}

// MutedByApp reports whether the current mute was caused by the controller.
func (c *Controller) MutedByApp() bool {
	return c.snapshot.mutedByApp
}
