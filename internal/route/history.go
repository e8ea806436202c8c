package route

import (
	"sync"

	"github.com/google/uuid"
)

// Listener is called with the new location after a history traversal.
type Listener func(location string)

// Signal is the navigation-change channel widgets subscribe to.
type Signal interface {
	Subscribe(l Listener) uuid.UUID
	Unsubscribe(id uuid.UUID)
}

// Navigator pushes a new location onto the history.
type Navigator interface {
	Push(path string)
}

// NavigatedMsg is emitted by widgets after they pushed a location.
type NavigatedMsg struct {
	Path string
}

type subscription struct {
	id uuid.UUID
	fn Listener
}

// History is an in-memory browsing history. Push behaves like a link click
// and notifies nobody; Back, Forward and Go behave like popstate and notify
// every subscriber.
type History struct {
	mu        sync.RWMutex
	entries   []string
	index     int
	listeners []subscription
}

// NewHistory creates a history positioned at initial.
func NewHistory(initial string) *History {
	if initial == "" {
		initial = Path(Home)
	}
	return &History{entries: []string{initial}}
}

// Location returns the current path.
func (h *History) Location() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.entries[h.index]
}

// Len returns the number of entries in the history.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Push appends path after the current entry, dropping any forward entries.
func (h *History) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], path)
	h.index = len(h.entries) - 1
}

// Replace swaps the current entry without adding a new one.
func (h *History) Replace(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.index] = path
}

// Back moves one entry back. It reports false when already at the start.
func (h *History) Back() bool {
	return h.Go(-1)
}

// Forward moves one entry forward. It reports false when already at the end.
func (h *History) Forward() bool {
	return h.Go(1)
}

// Go moves delta entries through the history and notifies subscribers.
// Out of range moves and delta 0 are ignored.
func (h *History) Go(delta int) bool {
	h.mu.Lock()
	target := h.index + delta
	if delta == 0 || target < 0 || target >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = target
	loc := h.entries[target]
	listeners := make([]subscription, len(h.listeners))
	copy(listeners, h.listeners)
	h.mu.Unlock()

	for _, s := range listeners {
		s.fn(loc)
	}
	return true
}

// Subscribe registers l and returns the id needed to remove it.
func (h *History) Subscribe(l Listener) uuid.UUID {
	id := uuid.New()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, subscription{id: id, fn: l})
	return id
}

// Unsubscribe removes the listener registered under id. Unknown ids are ignored.
func (h *History) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.listeners {
		if s.id == id {
			h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of active listeners.
func (h *History) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
