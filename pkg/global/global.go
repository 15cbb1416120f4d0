package global

import (
	"sync"

	"skihide/pkg/config"
	"skihide/pkg/logger"
	"skihide/pkg/notify"
)

var (
	cfg      *config.Config
	log      *logger.Logger
	notifier *notify.NotifyService
	initOnce sync.Once
	mu       sync.RWMutex
)

// InitGlobals sets the process-wide config and logger. Until SetNotifier
// is called notifications go to the log.
func InitGlobals(config *config.Config, logger *logger.Logger) {
	initOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		cfg = config
		log = logger
		notifier = notify.NewNotifyService(nil, logger)
	})
}

// SetNotifier replaces the notifier once the GUI is up.
func SetNotifier(n *notify.NotifyService) {
	mu.Lock()
	defer mu.Unlock()
	notifier = n
}

// GetAll returns all global instances at once.
func GetAll() (*config.Config, *logger.Logger, *notify.NotifyService) {
	mu.RLock()
	defer mu.RUnlock()
	return cfg, log, notifier
}
