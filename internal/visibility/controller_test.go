package visibility

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skihide/internal/wm"
)

type fakeWindows struct {
	calls   []string
	showErr error
	hideErr error
}

func (f *fakeWindows) Show(h wm.Handle) error {
	f.calls = append(f.calls, fmt.Sprintf("show %d", h))
	return f.showErr
}

func (f *fakeWindows) Hide(h wm.Handle) error {
	f.calls = append(f.calls, fmt.Sprintf("hide %d", h))
	return f.hideErr
}

type fakeAudio struct {
	muted  bool
	volume float32

	calls []string

	muteErr      error
	volumeErr    error
	setMuteErr   error
	setVolumeErr error
}

func (f *fakeAudio) Mute() (bool, error) {
	f.calls = append(f.calls, "Mute")
	return f.muted, f.muteErr
}

func (f *fakeAudio) SetMute(m bool) error {
	f.calls = append(f.calls, fmt.Sprintf("SetMute(%t)", m))
	if f.setMuteErr != nil {
		return f.setMuteErr
	}
	f.muted = m
	return nil
}

func (f *fakeAudio) Volume() (float32, error) {
	f.calls = append(f.calls, "Volume")
	if f.volumeErr != nil {
		return 0, f.volumeErr
	}
	return f.volume, nil
}

func (f *fakeAudio) SetVolume(v float32) error {
	f.calls = append(f.calls, fmt.Sprintf("SetVolume(%.2f)", v))
	if f.setVolumeErr != nil {
		return f.setVolumeErr
	}
	f.volume = v
	return nil
}

func (f *fakeAudio) setCalls() []string {
	var out []string
	for _, c := range f.calls {
		if c != "Mute" && c != "Volume" {
			out = append(out, c)
		}
	}
	return out
}

type settings bool

func (s settings) GetMuteAfterHide() bool { return bool(s) }

func newTestController(mute bool, audio *fakeAudio) (*Controller, *fakeWindows) {
	win := &fakeWindows{}
	if audio == nil {
		return NewController(win, nil, settings(mute), nil), win
	}
	return NewController(win, audio, settings(mute), nil), win
}

func TestScenarioTwoWindows(t *testing.T) {
	audio := &fakeAudio{volume: 0.6}
	c, win := newTestController(true, audio)

	assert.Equal(t, ActionHidden, c.Toggle(1, "W1"))
	assert.Equal(t, []string{"Mute", "Volume", "SetMute(true)"}, audio.calls)
	assert.Equal(t, map[wm.Handle]string{1: "W1"}, c.Hidden())
	assert.True(t, c.MutedByApp())

	audio.calls = nil
	assert.Equal(t, ActionHidden, c.Toggle(2, "W2"))
	assert.Empty(t, audio.calls)
	assert.Equal(t, map[wm.Handle]string{1: "W1", 2: "W2"}, c.Hidden())

	assert.Equal(t, ActionRestored, c.Toggle(1, "W1"))
	assert.Empty(t, audio.calls)
	assert.Equal(t, map[wm.Handle]string{2: "W2"}, c.Hidden())

	assert.Equal(t, ActionRestored, c.Toggle(2, "W2"))
	assert.Equal(t, []string{"SetMute(false)", "SetVolume(0.60)"}, audio.calls)
	assert.Zero(t, c.Len())
	assert.False(t, c.MutedByApp())

	assert.Equal(t, []string{"hide 1", "hide 2", "show 1", "show 2"}, win.calls)
}

func TestMuteDisabledNeverTouchesAudio(t *testing.T) {
	audio := &fakeAudio{volume: 0.5}
	c, _ := newTestController(false, audio)

	for round := 0; round < 3; round++ {
		for h := wm.Handle(1); h <= 4; h++ {
			c.Toggle(h, "w")
		}
		for h := wm.Handle(4); h >= 1; h-- {
			c.Toggle(h, "w")
		}
	}

	assert.Empty(t, audio.calls)
	assert.Zero(t, c.Len())
}

func TestEpisodeRestoresRegardlessOfOrder(t *testing.T) {
	orders := [][]wm.Handle{
		{1, 2, 3},
		{3, 2, 1},
		{2, 1, 3},
		{1, 3, 2},
	}

	for _, order := range orders {
		t.Run(fmt.Sprint(order), func(t *testing.T) {
			audio := &fakeAudio{volume: 0.42}
			c, _ := newTestController(true, audio)

			for h := wm.Handle(1); h <= 3; h++ {
				c.Toggle(h, "w")
			}
			require.True(t, audio.muted)

			for _, h := range order {
				c.Toggle(h, "w")
			}

			assert.Zero(t, c.Len())
			assert.False(t, audio.muted)
			assert.InDelta(t, 0.42, audio.volume, 1e-6)
			assert.Equal(t, []string{"SetMute(true)", "SetMute(false)", "SetVolume(0.42)"}, audio.setCalls())
		})
	}
}

func TestNoDoubleMuteAcrossEpisodeInterleaving(t *testing.T) {
	audio := &fakeAudio{volume: 1}
	c, _ := newTestController(true, audio)

	c.Toggle(1, "A")
	c.Toggle(2, "B")
	c.Toggle(2, "B")
	c.Toggle(3, "C")

	assert.Equal(t, []string{"SetMute(true)"}, audio.setCalls())
}

func TestUserAlreadyMutedKeepsOwnership(t *testing.T) {
	audio := &fakeAudio{muted: true, volume: 0.3}
	c, _ := newTestController(true, audio)

	c.Toggle(1, "A")
	c.Toggle(2, "B")
	c.Toggle(1, "A")
	c.Toggle(2, "B")

	assert.Empty(t, audio.setCalls())
	assert.True(t, audio.muted)
	assert.False(t, c.MutedByApp())
}

func TestVolumeReadFailureSkipsVolumeRestore(t *testing.T) {
	audio := &fakeAudio{volumeErr: errors.New("no level")}
	c, _ := newTestController(true, audio)

	c.Toggle(1, "A")
	c.Toggle(1, "A")

	assert.Equal(t, []string{"SetMute(true)", "SetMute(false)"}, audio.setCalls())
}

func TestSetMuteFailureIsIsolated(t *testing.T) {
	audio := &fakeAudio{volume: 0.8, setMuteErr: errors.New("access denied")}
	c, win := newTestController(true, audio)

	assert.Equal(t, ActionHidden, c.Toggle(1, "A"))
	assert.True(t, c.IsHidden(1))
	assert.False(t, c.MutedByApp())
	assert.Equal(t, []string{"hide 1"}, win.calls)

	audio.calls = nil
	audio.setMuteErr = nil
	c.Toggle(1, "A")

	assert.Empty(t, audio.calls, "no corrective restore for a mute that never happened")
}

func TestMuteReadFailureSkipsMuting(t *testing.T) {
	audio := &fakeAudio{muteErr: errors.New("device removed")}
	c, _ := newTestController(true, audio)

	c.Toggle(1, "A")
	c.Toggle(1, "A")

	assert.Empty(t, audio.setCalls())
	assert.False(t, c.MutedByApp())
}

func TestRestoreMuteFailureKeepsOwnership(t *testing.T) {
	audio := &fakeAudio{volume: 0.5}
	c, _ := newTestController(true, audio)

	c.Toggle(1, "A")
	audio.setMuteErr = errors.New("device busy")
	c.Toggle(1, "A")
	assert.True(t, c.MutedByApp())

	// The next episode does not re-snapshot; its end retries the restore.
	audio.setMuteErr = nil
	audio.calls = nil
	c.Toggle(2, "B")
	assert.Empty(t, audio.calls)
	c.Toggle(2, "B")
	assert.Equal(t, []string{"SetMute(false)", "SetVolume(0.50)"}, audio.calls)
	assert.False(t, c.MutedByApp())
}

func TestSetVolumeFailureStillReleasesOwnership(t *testing.T) {
	audio := &fakeAudio{volume: 0.5, setVolumeErr: errors.New("driver")}
	c, _ := newTestController(true, audio)

	c.Toggle(1, "A")
	c.Toggle(1, "A")

	assert.False(t, audio.muted)
	assert.False(t, c.MutedByApp())
}

func TestNoAudioCapability(t *testing.T) {
	c, win := newTestController(true, nil)

	assert.Equal(t, ActionHidden, c.Toggle(1, "A"))
	assert.Equal(t, ActionRestored, c.Toggle(1, "A"))
	assert.Equal(t, []string{"hide 1", "show 1"}, win.calls)
}

func TestStaleHandleIsDroppedOnRestore(t *testing.T) {
	audio := &fakeAudio{volume: 0.7}
	c, win := newTestController(true, audio)

	c.Toggle(9, "Closed later")
	win.showErr = wm.ErrNoWindow

	assert.Equal(t, ActionRestored, c.Toggle(9, "Closed later"))
	assert.False(t, c.IsHidden(9))
	assert.False(t, audio.muted)
}

func TestHideFailureStillTracksWindow(t *testing.T) {
	c, win := newTestController(false, nil)
	win.hideErr = errors.New("access denied")

	c.Toggle(5, "Elevated")
	assert.True(t, c.IsHidden(5))
}

func TestHiddenReturnsCopy(t *testing.T) {
	c, _ := newTestController(false, nil)
	c.Toggle(1, "A")

	snapshot := c.Hidden()
	delete(snapshot, 1)

	assert.True(t, c.IsHidden(1))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "hidden", ActionHidden.String())
	assert.Equal(t, "restored", ActionRestored.String())
	assert.Equal(t, "unknown", Action(0).String())
}
