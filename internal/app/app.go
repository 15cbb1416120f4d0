package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/sync/errgroup"

	"skihide/internal/audio"
	"skihide/internal/hider"
	"skihide/internal/housekeeping"
	"skihide/internal/ipc"
	"skihide/internal/trigger"
	"skihide/internal/trigger/keyboard"
	"skihide/internal/update"
	"skihide/internal/visibility"
	"skihide/internal/wm"
	"skihide/pkg/config"
	"skihide/pkg/global"
	"skihide/pkg/logger"
	"skihide/pkg/notify"
)

const appID = "xyz.skihide.app"

// ErrAlreadyRunning is returned when another instance answered on the
// control socket. That instance has been asked to show its window.
var ErrAlreadyRunning = errors.New("SkiHide is already running")

type Options struct {
	Debug      bool
	Silent     bool
	SocketPath string
}

type SkiHide struct {
	opts   Options
	config *config.Config
	log    *logger.Logger

	windows    *wm.Manager
	audioReady bool
	audioClose func() error
	queue      *trigger.Queue
	service    *hider.Service
	scheduler  *housekeeping.Scheduler
	autostart  *housekeeping.Autostart
	server     *ipc.Server
	notifier   *notify.NotifyService

	fyneApp    fyne.App
	window     fyne.Window
	hasTray    bool
	debugPanel *DebugPanel

	// UI elements
	status    *widget.Label
	list      *widget.List
	search    *widget.Entry
	hotkey    *widget.Entry
	useMouse  *widget.Check
	listenBtn *widget.Button

	// Guards listed and shown, read by list callbacks and written from
	// the dispatcher goroutine.
	mu       sync.RWMutex
	listed   []wm.Window
	shown    []wm.Window
	quitOnce sync.Once
}

// NewSkiHide wires the controller and its collaborators from the globals.
func NewSkiHide(opts Options) (*SkiHide, error) {
	cfg, log, _ := global.GetAll()
	if cfg == nil || log == nil {
		return nil, errors.New("globals are not initialized")
	}
	if opts.SocketPath == "" {
		opts.SocketPath = ipc.DefaultSocketPath()
	}

	if ipc.NewClient(opts.SocketPath, log).Running() {
		return nil, ErrAlreadyRunning
	}

	log.Debug("Detecting window manager")
	windows, err := wm.NewManager(log, cfg.GetExcludeTitles())
	if err != nil {
		return nil, err
	}

	s := &SkiHide{
		opts:       opts,
		config:     cfg,
		log:        log,
		windows:    windows,
		audioClose: func() error { return nil },
		queue:      trigger.NewQueue(trigger.DefaultQueueSize),
	}

	var audioCtl visibility.AudioControl
	if endpoint, err := audio.Open(log); err != nil {
		log.Warn("Audio endpoint unavailable, mute after hide is disabled", "error", err)
	} else {
		audioCtl = endpoint
		s.audioReady = true
		s.audioClose = endpoint.Close
	}

	ctrl := visibility.NewController(windows, audioCtl, cfg, log)
	s.service = hider.NewService(ctrl, s.queue, hider.Sources{
		Hotkey: func(acc trigger.Accelerator, q *trigger.Queue) hider.Listener {
			return keyboard.New(acc, q, log)
		},
		Mouse: func(q *trigger.Queue) hider.Listener {
			return trigger.NewMouseButtons(q, log)
		},
	}, log)
	s.service.OnChange(s.onToggle)

	s.scheduler = housekeeping.NewScheduler(s.scheduledTrim, log)

	if s.autostart, err = housekeeping.NewAutostart(); err != nil {
		log.Warn("Autostart unavailable", "error", err)
	}

	s.server = ipc.NewServer(opts.SocketPath, s, log)
	return s, nil
}

// Run shows the UI and blocks until the user quits.
func (s *SkiHide) Run() error {
	s.log.Info("Starting SkiHide application",
		"version", update.Version,
		"build", update.Build,
		"window_manager", s.windows.GetWMName(),
		"audio", s.audioReady)

	s.fyneApp = fyneapp.NewWithID(appID)
	s.notifier = notify.NewNotifyService(s.fyneApp, s.log)
	global.SetNotifier(s.notifier)

	s.window = s.fyneApp.NewWindow("SkiHide")
	if s.opts.Debug {
		s.debugPanel = NewDebugPanel(s.fyneApp, s.log)
		s.log.AddWriter(NewDebugWriter(s.debugPanel))
	}
	s.initializeMainUI()
	s.hasTray = s.setupTray()
	s.window.SetCloseIntercept(s.onClose)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.service.Run(gctx)
	})
	if err := s.server.Listen(); err != nil {
		s.log.Error("Control socket disabled", err)
	} else {
		g.Go(func() error {
			return s.server.Serve(gctx)
		})
	}
	go s.checkForUpdates(gctx)

	enabled, _, _ := s.config.GetMemClean()
	s.scheduler.Apply(enabled, s.config.GetMemCleanInterval())

	s.fyneApp.Lifecycle().SetOnStarted(s.checkPrivacy)

	if s.opts.Silent && s.hasTray && s.config.GetPrivacyAccepted() {
		s.log.Info("Starting silently in the tray")
		s.fyneApp.Run()
	} else {
		s.window.ShowAndRun()
	}

	s.log.Info("Shutting down")
	cancel()
	s.service.Stop()
	s.scheduler.Stop()
	s.queue.Close()

	err := g.Wait()
	if cerr := s.audioClose(); cerr != nil {
		s.log.Warn("Failed to release audio endpoint", "error", cerr)
	}
	if serr := s.config.Save(); serr != nil {
		s.log.Error("Failed to save configuration", serr)
	}
	return err
}

func (s *SkiHide) showMain() {
	s.window.Show()
	s.window.RequestFocus()
}

func (s *SkiHide) quit() {
	s.quitOnce.Do(func() {
		s.log.Info("Quit requested")
		s.fyneApp.Quit()
	})
}

func (s *SkiHide) scheduledTrim() {
	cleaned, failed, err := housekeeping.TrimWorkingSets(s.log)
	if err != nil {
		s.log.Error("Scheduled memory clean failed", err)
		return
	}
	s.log.Info("Scheduled memory clean finished", "cleaned", cleaned, "failed", failed)
}

// Toggle, Show, Hidden and Quit serve the control socket.

func (s *SkiHide) Toggle() error {
	if !s.service.Request(trigger.SourceIPC) {
		return errors.New("trigger queue is full")
	}
	return nil
}

func (s *SkiHide) Show() error {
	if s.fyneApp == nil {
		return errors.New("UI is not running")
	}
	s.showMain()
	return nil
}

func (s *SkiHide) Hidden() map[wm.Handle]string {
	return s.service.Hidden()
}

func (s *SkiHide) Quit() error {
	if s.fyneApp == nil {
		return errors.New("UI is not running")
	}
	go s.quit()
	return nil
}

func (s *SkiHide) systemInfo() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("Version: %s (build %s)\nOS: %s/%s\nGo: %s\nHost: %s\nWindow manager: %s\nAudio control: %t\nConfig: %s",
		update.Version, update.Build,
		runtime.GOOS, runtime.GOARCH,
		runtime.Version(),
		hostname,
		s.windows.GetWMName(),
		s.audioReady,
		s.config.GetPath())
}
