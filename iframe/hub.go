package iframe

import (
	"sync"

	"github.com/fwojciec/llmfeeder"
)

// Hub fans frame responses out to subscribers. FrameTransport
// implementations embed it and call Publish for every response they
// receive.
type Hub struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(llmfeeder.FrameResponse)
}

// Subscribe registers fn and returns the function that removes it.
func (h *Hub) Subscribe(fn func(llmfeeder.FrameResponse)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs == nil {
		h.subs = make(map[int]func(llmfeeder.FrameResponse))
	}
	id := h.next
	h.next++
	h.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Publish delivers resp to every current subscriber.
func (h *Hub) Publish(resp llmfeeder.FrameResponse) {
	h.mu.RLock()
	fns := make([]func(llmfeeder.FrameResponse), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(resp)
	}
}
