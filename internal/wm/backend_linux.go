package wm

import (
	"fmt"
	"os"

	"skihide/pkg/core"
)

func newBackend(log core.Logger, excludeTitles []string) (WindowManager, error) {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	log.Info("Session type detected", "session", sessionType)

	switch sessionType {
	case "x11", "":
		x, err := NewX11(log, excludeTitles)
		if err != nil {
			return nil, err
		}
		return x, nil
	default:
		return nil, fmt.Errorf("session type %q: %w", sessionType, ErrUnsupported)
	}
}
