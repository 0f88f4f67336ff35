package console

import (
	"context"
	"strings"
	"sync"
)

// ViewerContext identifies who is looking at the console.
type ViewerContext struct {
	UserID string
	Roles  []string
	Locale string
}

// StateStore persists page state per viewer and page.
type StateStore interface {
	Load(ctx context.Context, viewer ViewerContext, page string) (PageState, error)
	Save(ctx context.Context, viewer ViewerContext, state PageState) error
	Clear(ctx context.Context, viewer ViewerContext, page string) error
}

// StateKey is the storage key for a viewer's page.
func StateKey(viewer ViewerContext, page string) string {
	user := strings.TrimSpace(viewer.UserID)
	if user == "" {
		user = "anonymous"
	}
	return user + "::" + page
}

// InMemoryStateStore is the default concurrency-safe store.
type InMemoryStateStore struct {
	mu   sync.RWMutex
	data map[string]PageState
}

// NewInMemoryStateStore creates an empty store.
func NewInMemoryStateStore() *InMemoryStateStore {
	return &InMemoryStateStore{data: make(map[string]PageState)}
}

// Load returns the stored state or a fresh one.
func (s *InMemoryStateStore) Load(_ context.Context, viewer ViewerContext, page string) (PageState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.data[StateKey(viewer, page)]
	if !ok {
		return NewPageState(page), nil
	}
	return cloneState(state), nil
}

// Save stores state under its page.
func (s *InMemoryStateStore) Save(_ context.Context, viewer ViewerContext, state PageState) error {
	state.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[StateKey(viewer, state.Page)] = cloneState(state)
	return nil
}

// Clear drops the stored state.
func (s *InMemoryStateStore) Clear(_ context.Context, viewer ViewerContext, page string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, StateKey(viewer, page))
	return nil
}

func cloneState(state PageState) PageState {
	out := state
	out.Modals = make(map[string]bool, len(state.Modals))
	for k, v := range state.Modals {
		out.Modals[k] = v
	}
	out.Filters = make(map[string]string, len(state.Filters))
	for k, v := range state.Filters {
		out.Filters[k] = v
	}
	if state.Selected != nil {
		out.Selected = append([]byte(nil), state.Selected...)
	}
	return out
}
