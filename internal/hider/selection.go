package hider

import (
	"sync"

	"skihide/internal/wm"
)

// Selection is the window a trigger acts on. The UI writes it, the
// dispatcher reads it.
type Selection struct {
	mu     sync.RWMutex
	window wm.Window
}

func (s *Selection) Set(w wm.Window) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window = w
}

func (s *Selection) Clear() {
	s.Set(wm.Window{})
}

// Get returns the current target; a zero Window means nothing is selected.
func (s *Selection) Get() wm.Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window
}
