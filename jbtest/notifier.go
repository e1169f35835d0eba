package jbtest

import (
	"sync"

	"github.com/iov-one/jointbank"
)

// Recorder is a jointbank.Notifier that keeps all events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []jointbank.Event
}

var _ jointbank.Notifier = (*Recorder)(nil)

// Notify implements jointbank.Notifier.
func (r *Recorder) Notify(_ jointbank.Context, e jointbank.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns all events received so far, oldest first.
func (r *Recorder) Events() []jointbank.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]jointbank.Event(nil), r.events...)
}

// Names returns the names of all events received so far, oldest first.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, e := range r.events {
		names[i] = e.EventName()
	}
	return names
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
