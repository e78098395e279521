package ui

import (
	"scout-client/internal/constants"
	"scout-client/internal/observe"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastWarning ToastType = "warning"
	ToastInfo    ToastType = "info"
)

type Toast struct {
	ID       string
	Type     ToastType
	Title    string
	Message  string
	Duration time.Duration
}

type Timer interface {
	Stop() bool
}

// Clock schedules toast expiry.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// ToastQueue holds visible toasts in display order. Each toast removes
// itself once its duration elapses.
type ToastQueue struct {
	mu     sync.Mutex
	toasts []Toast
	timers map[string]Timer
	clock  Clock
	hub    observe.Hub[[]Toast]
}

func NewToastQueue() *ToastQueue {
	return NewToastQueueWithClock(realClock{})
}

func NewToastQueueWithClock(clock Clock) *ToastQueue {
	return &ToastQueue{timers: make(map[string]Timer), clock: clock}
}

// Show appends t with a fresh id and returns the id. A zero duration
// means the default.
func (q *ToastQueue) Show(t Toast) string {
	t.ID = gonanoid.MustGenerate(constants.ToastIDAlphabet, constants.ToastIDLength)
	if t.Duration <= 0 {
		t.Duration = constants.DefaultToastDuration
	}

	q.mu.Lock()
	q.toasts = append(q.toasts, t)
	id := t.ID
	q.timers[id] = q.clock.AfterFunc(t.Duration, func() { q.Remove(id) })
	q.mu.Unlock()

	q.publish()
	return id
}

func (q *ToastQueue) Remove(id string) {
	q.mu.Lock()
	removed := false
	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			removed = true
			break
		}
	}
	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
	q.mu.Unlock()

	if removed {
		q.publish()
	}
}

func (q *ToastQueue) Success(title, message string) string {
	return q.Show(Toast{Type: ToastSuccess, Title: title, Message: message})
}

func (q *ToastQueue) Error(title, message string) string {
	return q.Show(Toast{Type: ToastError, Title: title, Message: message})
}

func (q *ToastQueue) Warning(title, message string) string {
	return q.Show(Toast{Type: ToastWarning, Title: title, Message: message})
}

func (q *ToastQueue) Info(title, message string) string {
	return q.Show(Toast{Type: ToastInfo, Title: title, Message: message})
}

func (q *ToastQueue) Toasts() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// Clear removes every toast and stops their timers.
func (q *ToastQueue) Clear() {
	q.mu.Lock()
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.toasts = nil
	q.mu.Unlock()
	q.publish()
}

func (q *ToastQueue) Subscribe(fn func([]Toast)) func() {
	return q.hub.Subscribe(fn)
}

func (q *ToastQueue) publish() {
	q.hub.Publish(q.Toasts())
}
