//go:build !windows && !linux

package audio

import "skihide/pkg/core"

// Unsupported never opens.
type Unsupported struct{}

func Open(core.Logger) (*Unsupported, error) {
	return nil, ErrUnavailable
}

func (Unsupported) Mute() (bool, error)      { return false, ErrUnavailable }
func (Unsupported) SetMute(bool) error       { return ErrUnavailable }
func (Unsupported) Volume() (float32, error) { return 0, ErrUnavailable }
func (Unsupported) SetVolume(float32) error  { return ErrUnavailable }
func (Unsupported) Close() error             { return nil }
