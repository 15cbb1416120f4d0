// Package trigger collects toggle requests from every input source into a
// single ordered queue.
package trigger

import (
	"errors"
	"sync"
	"time"
)

// ErrUnsupported is returned by sources that do not exist on this platform.
var ErrUnsupported = errors.New("trigger source is not supported on this platform")

// Source identifies where a toggle request came from.
type Source string

const (
	SourceHotkey Source = "hotkey"
	SourceMouse  Source = "mouse"
	SourceUI     Source = "ui"
	SourceIPC    Source = "ipc"
)

type Event struct {
	Source Source
	At     time.Time
}

// DefaultQueueSize bounds bursts (key repeat, button mashing).
const DefaultQueueSize = 16

// Queue is safe to Post into from any goroutine, including OS callback
// threads. Exactly one consumer should drain Events.
type Queue struct {
	mu     sync.RWMutex
	ch     chan Event
	closed bool
	now    func() time.Time
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		ch:  make(chan Event, size),
		now: time.Now,
	}
}

// Post enqueues a request without blocking. It reports false when the
// queue is full or closed and the request was dropped.
func (q *Queue) Post(src Source) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false
	}
	select {
	case q.ch <- Event{Source: src, At: q.now()}:
		return true
	default:
		return false
	}
}

func (q *Queue) Events() <-chan Event {
	return q.ch
}

// Close stops accepting events; the consumer drains what is left.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
}
