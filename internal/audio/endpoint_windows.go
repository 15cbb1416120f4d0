package audio

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"

	"skihide/pkg/core"
)

type call struct {
	fn   func(*wca.IAudioEndpointVolume) error
	done chan error
}

// Endpoint is the default render device. COM objects are bound to the
// thread that created them, so every call is executed on one locked thread.
type Endpoint struct {
	log   core.Logger
	calls chan call

	closeOnce sync.Once
	closed    chan struct{}
	stopped   chan struct{}
}

// Open binds the default render endpoint's volume interface.
func Open(log core.Logger) (*Endpoint, error) {
	e := &Endpoint{
		log:     log,
		calls:   make(chan call),
		closed:  make(chan struct{}),
		stopped: make(chan struct{}),
	}

	ready := make(chan error, 1)
	go e.serve(ready)
	if err := <-ready; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	log.Info("Audio endpoint opened", "backend", "wasapi")
	return e, nil
}

func (e *Endpoint) serve(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(e.stopped)

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		// S_FALSE: already initialized on this thread
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != 1 {
			ready <- fmt.Errorf("CoInitializeEx: %w", err)
			return
		}
	}
	defer ole.CoUninitialize()

	var mmde *wca.IMMDeviceEnumerator
	if err := wca.CoCreateInstance(wca.CLSID_MMDeviceEnumerator, 0, wca.CLSCTX_ALL, wca.IID_IMMDeviceEnumerator, &mmde); err != nil {
		ready <- fmt.Errorf("create device enumerator: %w", err)
		return
	}
	defer mmde.Release()

	var mmd *wca.IMMDevice
	if err := mmde.GetDefaultAudioEndpoint(wca.ERender, wca.EConsole, &mmd); err != nil {
		ready <- fmt.Errorf("get default endpoint: %w", err)
		return
	}
	defer mmd.Release()

	var aev *wca.IAudioEndpointVolume
	if err := mmd.Activate(wca.IID_IAudioEndpointVolume, wca.CLSCTX_ALL, nil, &aev); err != nil {
		ready <- fmt.Errorf("activate endpoint volume: %w", err)
		return
	}
	defer aev.Release()

	ready <- nil

	for {
		select {
		case <-e.closed:
			return
		case c := <-e.calls:
			c.done <- c.fn(aev)
		}
	}
}

func (e *Endpoint) do(fn func(*wca.IAudioEndpointVolume) error) error {
	c := call{fn: fn, done: make(chan error, 1)}
	select {
	case e.calls <- c:
		return <-c.done
	case <-e.stopped:
		return ErrUnavailable
	}
}

func (e *Endpoint) Mute() (bool, error) {
	var muted bool
	err := e.do(func(aev *wca.IAudioEndpointVolume) error {
		return aev.GetMute(&muted)
	})
	if err != nil {
		return false, fmt.Errorf("get mute: %w", err)
	}
	return muted, nil
}

func (e *Endpoint) SetMute(muted bool) error {
	err := e.do(func(aev *wca.IAudioEndpointVolume) error {
		return aev.SetMute(muted, nil)
	})
	if err != nil {
		return fmt.Errorf("set mute %t: %w", muted, err)
	}
	return nil
}

func (e *Endpoint) Volume() (float32, error) {
	var level float32
	err := e.do(func(aev *wca.IAudioEndpointVolume) error {
		return aev.GetMasterVolumeLevelScalar(&level)
	})
	if err != nil {
		return 0, fmt.Errorf("get volume: %w", err)
	}
	return clamp(level), nil
}

func (e *Endpoint) SetVolume(level float32) error {
	if err := checkVolume(level); err != nil {
		return err
	}
	err := e.do(func(aev *wca.IAudioEndpointVolume) error {
		return aev.SetMasterVolumeLevelScalar(level, nil)
	})
	if err != nil {
		return fmt.Errorf("set volume %.2f: %w", level, err)
	}
	return nil
}

// Close releases the COM objects and stops the worker thread.
func (e *Endpoint) Close() error {
	e.closeOnce.Do(func() { close(e.closed) })
	<-e.stopped
	return nil
}
