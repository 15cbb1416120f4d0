//go:build !windows

package trigger

import "skihide/pkg/core"

// MouseButtons is only available on Windows.
type MouseButtons struct{}

func NewMouseButtons(*Queue, core.Logger) *MouseButtons {
	return &MouseButtons{}
}

func (m *MouseButtons) Start() error {
	return ErrUnsupported
}

func (m *MouseButtons) Stop() error {
	return nil
}
