package housekeeping

import (
	"sync"
	"time"

	"skihide/pkg/core"
)

// Scheduler runs a job every interval while enabled. The first run happens
// one interval after Apply, never immediately.
type Scheduler struct {
	job func()
	log core.Logger

	mu       sync.Mutex
	timer    *time.Timer
	interval time.Duration
	gen      uint64
	running  sync.WaitGroup
}

func NewScheduler(job func(), log core.Logger) *Scheduler {
	if log == nil {
		log = core.Nop{}
	}
	return &Scheduler{job: job, log: log}
}

// Apply cancels any pending run and, when enabled, schedules the next one.
func (s *Scheduler) Apply(enabled bool, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	if !enabled || interval <= 0 {
		s.log.Debug("Memory clean schedule disabled")
		return
	}

	s.interval = interval
	s.scheduleLocked()
	s.log.Info("Memory clean scheduled", "interval", interval.String())
}

// Stop cancels pending runs and waits for a run in progress.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.cancelLocked()
	s.mu.Unlock()
	s.running.Wait()
}

func (s *Scheduler) cancelLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) scheduleLocked() {
	gen := s.gen
	s.timer = time.AfterFunc(s.interval, func() { s.tick(gen) })
}

func (s *Scheduler) tick(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.running.Add(1)
	s.scheduleLocked()
	s.mu.Unlock()

	go func() {
		defer s.running.Done()
		defer func() {
			if r := recover(); r != nil {
				s.log.Warn("Scheduled job panicked", "panic", r)
			}
		}()
		s.job()
	}()
}
