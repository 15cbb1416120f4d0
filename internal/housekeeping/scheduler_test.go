package housekeeping

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunsPeriodically(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(func() { runs.Add(1) }, nil)

	s.Apply(true, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestSchedulerFirstRunWaitsOneInterval(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(func() { runs.Add(1) }, nil)
	defer s.Stop()

	s.Apply(true, time.Hour)
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, runs.Load())
}

func TestSchedulerApplyDisable(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(func() { runs.Add(1) }, nil)

	s.Apply(true, 10*time.Millisecond)
	s.Apply(false, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	assert.Zero(t, runs.Load())
}

func TestSchedulerSurvivesPanickingJob(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(func() {
		runs.Add(1)
		panic("boom")
	}, nil)

	s.Apply(true, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	s.Stop()
}
