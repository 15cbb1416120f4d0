// Package audio adapts the system output device to visibility.AudioControl.
package audio

import (
	"errors"
	"fmt"
)

// ErrUnavailable means no output endpoint could be opened; callers run
// without audio control.
var ErrUnavailable = errors.New("no audio endpoint available")

func clamp(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func checkVolume(v float32) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("volume %.3f out of range [0,1]", v)
	}
	return nil
}
