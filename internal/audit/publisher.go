package audit

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Publisher delivers audit events to a sink.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// InMemory keeps events in order of emission. It backs tests and local runs
// without Kafka.
type InMemory struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (p *InMemory) Emit(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event.stamp(time.Now()))
	return nil
}

func (p *InMemory) Events() []Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.events)
}

// ByAction returns the recorded events with the given action.
func (p *InMemory) ByAction(action Action) []Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []Event
	for _, e := range p.events {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}
