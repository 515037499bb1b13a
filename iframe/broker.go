package iframe

import (
	"sync"

	"github.com/fwojciec/llmfeeder"
)

// Broker is the pending-request table of the cross-frame protocol. Each
// outstanding request owns one buffered channel keyed by its correlation
// id; a response is delivered only to the request with the same id.
type Broker struct {
	mu      sync.Mutex
	pending map[string]chan llmfeeder.FrameResponse
}

// NewBroker creates a new Broker.
func NewBroker() *Broker {
	return &Broker{pending: make(map[string]chan llmfeeder.FrameResponse)}
}

// Register opens a pending entry for id and returns the channel its
// response will arrive on.
func (b *Broker) Register(id string) <-chan llmfeeder.FrameResponse {
	ch := make(chan llmfeeder.FrameResponse, 1)
	b.mu.Lock()
	b.pending[id] = ch
	b.mu.Unlock()
	return ch
}

// Resolve delivers resp to the request it answers and closes that entry.
// Responses with the wrong action, an unknown id or an already resolved id
// are ignored. Reports whether resp was delivered.
func (b *Broker) Resolve(resp llmfeeder.FrameResponse) bool {
	if resp.Action != llmfeeder.ActionExtractResponse {
		return false
	}
	b.mu.Lock()
	ch, ok := b.pending[resp.MessageID]
	if ok {
		delete(b.pending, resp.MessageID)
	}
	b.mu.Unlock()
	if !ok {
		return false
	}
	ch <- resp
	return true
}

// Cancel removes the entry for id, if any.
func (b *Broker) Cancel(id string) {
	b.mu.Lock()
	delete(b.pending, id)
	b.mu.Unlock()
}

// Pending returns the number of outstanding requests.
func (b *Broker) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
