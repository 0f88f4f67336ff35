package console

import (
	"context"
	"sync"
	"time"
)

// ResourceEvent announces a backend change made through the console.
type ResourceEvent struct {
	Page      string    `json:"page"`
	Action    string    `json:"action"`
	IDs       []string  `json:"ids,omitempty"`
	Affected  int       `json:"affected"`
	ViewerID  string    `json:"viewer_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RefreshHook is notified after every successful mutation.
type RefreshHook interface {
	ResourceChanged(ctx context.Context, event ResourceEvent) error
}

type noopRefreshHook struct{}

func (noopRefreshHook) ResourceChanged(context.Context, ResourceEvent) error { return nil }

// BroadcastHook fans out resource events to in-process subscribers.
// Slow subscribers miss events rather than block mutations.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]chan ResourceEvent
	next int
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{subs: make(map[int]chan ResourceEvent)}
}

// ResourceChanged broadcasts event to every subscriber.
func (h *BroadcastHook) ResourceChanged(_ context.Context, event ResourceEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel of events and a cancel func.
func (h *BroadcastHook) Subscribe() (<-chan ResourceEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan ResourceEvent, 8)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Subscribers reports the number of live subscriptions.
func (h *BroadcastHook) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
