// Package hider runs the dispatcher that turns trigger events into
// visibility toggles of the selected window.
package hider

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"skihide/internal/trigger"
	"skihide/internal/visibility"
	"skihide/internal/wm"
	"skihide/pkg/core"
)

// ErrNoTrigger is returned by Start when neither a hotkey nor the mouse
// side buttons are configured.
var ErrNoTrigger = errors.New("no hotkey or mouse trigger configured")

// Listener is a trigger source that posts into the queue while started.
type Listener interface {
	Start() error
	Stop() error
}

// Sources builds listeners for the configured triggers. Either field may
// be nil when the platform lacks the source.
type Sources struct {
	Hotkey func(trigger.Accelerator, *trigger.Queue) Listener
	Mouse  func(*trigger.Queue) Listener
}

// TriggerSettings is the part of the configuration Start consults.
type TriggerSettings interface {
	GetHotkey() string
	GetUseMouse() bool
}

// Change describes one completed toggle.
type Change struct {
	Window wm.Window
	Action visibility.Action
	Source trigger.Source
}

type Service struct {
	ctrl      *visibility.Controller
	queue     *trigger.Queue
	sources   Sources
	selection *Selection
	log       core.Logger

	onChange func(Change)

	mu        sync.RWMutex
	hidden    map[wm.Handle]string
	listeners []Listener
}

// NewService takes ownership of ctrl: nothing else may call it afterwards.
func NewService(ctrl *visibility.Controller, queue *trigger.Queue, sources Sources, log core.Logger) *Service {
	if log == nil {
		log = core.Nop{}
	}
	return &Service{
		ctrl:      ctrl,
		queue:     queue,
		sources:   sources,
		selection: &Selection{},
		log:       log,
		hidden:    make(map[wm.Handle]string),
	}
}

func (s *Service) Selection() *Selection {
	return s.selection
}

// OnChange registers a callback run on the dispatcher goroutine after each
// toggle. Must be set before Run.
func (s *Service) OnChange(fn func(Change)) {
	s.onChange = fn
}

// Run drains the queue until ctx is done or the queue is closed. It is the
// controller's only caller.
func (s *Service) Run(ctx context.Context) error {
	s.log.Info("Dispatcher started")
	defer s.log.Info("Dispatcher stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-s.queue.Events():
			if !ok {
				return nil
			}
			s.handle(ev)
		}
	}
}

func (s *Service) handle(ev trigger.Event) {
	target := s.selection.Get()
	if target.IsZero() {
		s.log.Debug("Trigger ignored, no window selected", "source", ev.Source)
		return
	}

	action := s.ctrl.Toggle(target.Handle, target.Title)
	snapshot := s.ctrl.Hidden()

	s.mu.Lock()
	s.hidden = snapshot
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(Change{Window: target, Action: action, Source: ev.Source})
	}
}

// Hidden returns the hidden set as of the last toggle. Safe from any
// goroutine.
func (s *Service) Hidden() map[wm.Handle]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[wm.Handle]string, len(s.hidden))
	for h, title := range s.hidden {
		out[h] = title
	}
	return out
}

func (s *Service) IsHidden(h wm.Handle) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.hidden[h]
	return ok
}

// Request posts a toggle on behalf of src.
func (s *Service) Request(src trigger.Source) bool {
	ok := s.queue.Post(src)
	if !ok {
		s.log.Warn("Trigger dropped, queue full", "source", src)
	}
	return ok
}

// Start registers the configured trigger sources. On any failure the
// sources already started are stopped again.
func (s *Service) Start(settings TriggerSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.listeners) > 0 {
		return nil
	}

	hotkey := settings.GetHotkey()
	useMouse := settings.GetUseMouse()
	if hotkey == "" && !useMouse {
		return ErrNoTrigger
	}

	var started []Listener
	rollback := func() {
		for _, l := range started {
			if err := l.Stop(); err != nil {
				s.log.Warn("Failed to stop trigger source", "error", err)
			}
		}
	}

	if hotkey != "" {
		acc, err := trigger.ParseAccelerator(hotkey)
		if err != nil {
			return fmt.Errorf("invalid hotkey %q: %w", hotkey, err)
		}
		if s.sources.Hotkey == nil {
			return fmt.Errorf("hotkey: %w", trigger.ErrUnsupported)
		}
		l := s.sources.Hotkey(acc, s.queue)
		if err := l.Start(); err != nil {
			return fmt.Errorf("failed to register hotkey %s: %w", acc, err)
		}
		started = append(started, l)
		s.log.Info("Hotkey registered", "hotkey", acc.String())
	}

	if useMouse {
		if s.sources.Mouse == nil {
			rollback()
			return fmt.Errorf("mouse side buttons: %w", trigger.ErrUnsupported)
		}
		l := s.sources.Mouse(s.queue)
		if err := l.Start(); err != nil {
			rollback()
			return fmt.Errorf("failed to start mouse listener: %w", err)
		}
		started = append(started, l)
		s.log.Info("Mouse side-button listener enabled")
	}

	s.listeners = started
	return nil
}

// Stop unregisters every trigger source. Errors are logged.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.listeners {
		if err := l.Stop(); err != nil {
			s.log.Warn("Failed to stop trigger source", "error", err)
		}
	}
	if len(s.listeners) > 0 {
		s.log.Info("All listeners stopped")
	}
	s.listeners = nil
}

func (s *Service) Listening() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners) > 0
}
