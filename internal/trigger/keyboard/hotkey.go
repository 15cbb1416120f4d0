// Package keyboard registers the global toggle hotkey.
package keyboard

import (
	"fmt"
	"sync"

	"golang.design/x/hotkey"

	"skihide/internal/trigger"
	"skihide/pkg/core"
)

var keyMap = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
	"space":  hotkey.KeySpace,
	"enter":  hotkey.KeyReturn,
	"escape": hotkey.KeyEscape,
	"tab":    hotkey.KeyTab,
	"delete": hotkey.KeyDelete,
	"up":     hotkey.KeyUp,
	"down":   hotkey.KeyDown,
	"left":   hotkey.KeyLeft,
	"right":  hotkey.KeyRight,
}

// Hotkey posts a toggle request on every keydown of its accelerator.
type Hotkey struct {
	acc   trigger.Accelerator
	queue *trigger.Queue
	log   core.Logger

	mu   sync.Mutex
	hk   *hotkey.Hotkey
	stop chan struct{}
	done chan struct{}
}

func New(acc trigger.Accelerator, queue *trigger.Queue, log core.Logger) *Hotkey {
	return &Hotkey{acc: acc, queue: queue, log: log}
}

func bind(acc trigger.Accelerator) ([]hotkey.Modifier, hotkey.Key, error) {
	key, ok := keyMap[acc.Key]
	if !ok {
		return nil, 0, fmt.Errorf("key %q cannot be bound", acc.Key)
	}
	mods := make([]hotkey.Modifier, 0, len(acc.Modifiers))
	for _, name := range acc.Modifiers {
		mod, ok := modifierMap[name]
		if !ok {
			return nil, 0, fmt.Errorf("modifier %q is not available on this platform", name)
		}
		mods = append(mods, mod)
	}
	return mods, key, nil
}

// Start registers the hotkey with the OS. Registering twice is a no-op.
func (h *Hotkey) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hk != nil {
		return nil
	}

	mods, key, err := bind(h.acc)
	if err != nil {
		return err
	}
	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("failed to register hotkey %s: %w", h.acc, err)
	}

	h.hk = hk
	h.stop = make(chan struct{})
	h.done = make(chan struct{})
	go h.listen(hk, h.stop, h.done)

	h.log.Info("Hotkey registered", "hotkey", h.acc.String())
	return nil
}

func (h *Hotkey) listen(hk *hotkey.Hotkey, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}
			if !h.queue.Post(trigger.SourceHotkey) {
				h.log.Warn("Dropped hotkey trigger, queue full")
			}
		}
	}
}

// Stop unregisters the hotkey.
func (h *Hotkey) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hk == nil {
		return nil
	}

	close(h.stop)
	<-h.done
	err := h.hk.Unregister()
	h.hk = nil
	if err != nil {
		return fmt.Errorf("failed to unregister hotkey %s: %w", h.acc, err)
	}
	h.log.Info("Hotkey unregistered", "hotkey", h.acc.String())
	return nil
}
