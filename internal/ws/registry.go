package ws

import (
	"sync"

	"github.com/mariusrugan/credit-card-tx-api/internal/domain"
)

// Registry is one connection's set of subscribed topics. It is shared only
// between that connection's two halves: the read half mutates it, the write
// half consults it on every delivery. Critical sections are map operations
// only, so neither half can stall the other for long.
type Registry struct {
	mu     sync.RWMutex
	topics map[domain.Topic]struct{}
}

func NewRegistry() *Registry {
	return &Registry{topics: make(map[domain.Topic]struct{})}
}

// Subscribe adds a topic. Subscribing to an already-subscribed topic is a
// no-op.
func (r *Registry) Subscribe(topic domain.Topic) {
	r.mu.Lock()
	r.topics[topic] = struct{}{}
	r.mu.Unlock()
}

// Unsubscribe removes a topic. Unsubscribing from a non-subscribed topic is
// a no-op.
func (r *Registry) Unsubscribe(topic domain.Topic) {
	r.mu.Lock()
	delete(r.topics, topic)
	r.mu.Unlock()
}

// Contains reports current membership.
func (r *Registry) Contains(topic domain.Topic) bool {
	r.mu.RLock()
	_, ok := r.topics[topic]
	r.mu.RUnlock()
	return ok
}
