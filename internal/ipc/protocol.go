package ipc

import (
	"os"
	"path/filepath"

	"skihide/internal/wm"
)

const (
	CommandToggle = "toggle"
	CommandShow   = "show"
	CommandStatus = "status"
	CommandQuit   = "quit"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const socketName = "skihide.sock"

type Request struct {
	Command string `json:"command"`
}

type Response struct {
	Status  string      `json:"status" yaml:"status"`
	Message string      `json:"message" yaml:"message"`
	Hidden  []wm.Window `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// DefaultSocketPath is skihide.sock in the OS temp dir. Windows 10 1803+
// supports AF_UNIX as well.
func DefaultSocketPath() string {
	return filepath.Join(os.TempDir(), socketName)
}
