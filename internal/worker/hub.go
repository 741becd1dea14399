package worker

import "sync"

// Hub fans out per-user signals to registered listeners.
// The websocket handler publishes visibility changes; the preloader subscribes.
type Hub struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[int64]map[uint64]func()
}

func NewHub() *Hub {
	return &Hub{listeners: make(map[int64]map[uint64]func())}
}

// Subscribe registers fn for userID. The returned func removes it and is safe to call twice.
func (h *Hub) Subscribe(userID int64, fn func()) (unsubscribe func()) {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	if h.listeners[userID] == nil {
		h.listeners[userID] = make(map[uint64]func())
	}
	h.listeners[userID][id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.listeners[userID], id)
			if len(h.listeners[userID]) == 0 {
				delete(h.listeners, userID)
			}
		})
	}
}

// Publish calls every listener of userID outside the lock and returns how many ran.
func (h *Hub) Publish(userID int64) int {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.listeners[userID]))
	for _, fn := range h.listeners[userID] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Listeners returns the number of listeners registered for userID.
func (h *Hub) Listeners(userID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners[userID])
}
