//go:build !windows && !linux

package wm

import "skihide/pkg/core"

func newBackend(core.Logger, []string) (WindowManager, error) {
	return nil, ErrUnsupported
}
