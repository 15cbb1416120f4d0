package wm

import "skihide/pkg/core"

func newBackend(log core.Logger, excludeTitles []string) (WindowManager, error) {
	w, err := NewWin32(log, excludeTitles)
	if err != nil {
		return nil, err
	}
	return w, nil
}
