// Package notify implements the in-process notification queue the UI drains
// to show toasts. Messages are shown one at a time, FIFO.
package notify

import (
	"sync"
	"time"
)

// Level classifies a notification for display.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// DefaultTimeout is how long a notification stays visible unless overridden.
const DefaultTimeout = 3 * time.Second

// Notification is a single queued message.
type Notification struct {
	Message string
	Level   Level
	Timeout time.Duration
}

// Queue is a FIFO notification queue. Push appends; the UI calls Current to
// read the visible notification and Dismiss to advance to the next one.
type Queue struct {
	mu      sync.Mutex
	pending []Notification
	current *Notification
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push queues a message with the default display timeout.
func (q *Queue) Push(msg string, level Level) {
	q.PushTimeout(msg, level, DefaultTimeout)
}

// PushTimeout queues a message with an explicit display timeout.
func (q *Queue) PushTimeout(msg string, level Level, timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, Notification{Message: msg, Level: level, Timeout: timeout})
	q.promote()
}

// Current returns the notification being shown, if any.
func (q *Queue) Current() (Notification, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return Notification{}, false
	}
	return *q.current, true
}

// Dismiss hides the current notification and promotes the next pending one.
func (q *Queue) Dismiss() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.current = nil
	q.promote()
}

// Len returns the number of notifications still waiting behind the current one.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// promote moves the head of the queue into current if nothing is showing.
// Callers must hold mu.
func (q *Queue) promote() {
	if q.current != nil || len(q.pending) == 0 {
		return
	}
	head := q.pending[0]
	q.pending = q.pending[1:]
	q.current = &head
}
