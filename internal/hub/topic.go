package hub

import (
	"sync"
	"sync/atomic"

	"github.com/mariusrugan/credit-card-tx-api/internal/metrics"
)

// Topic is a bounded broadcast channel for values of type T. Any number of
// producers may publish; any number of subscribers may attach. A subscriber
// observes every message published after it attached (no replay), in publish
// order, minus whatever eviction discarded while it lagged.
type Topic[T any] struct {
	name     string
	capacity int

	mu   sync.RWMutex
	subs map[*Subscription[T]]struct{}
}

// NewTopic creates a topic whose subscribers each buffer up to capacity
// unread messages.
func NewTopic[T any](name string, capacity int) *Topic[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Topic[T]{
		name:     name,
		capacity: capacity,
		subs:     make(map[*Subscription[T]]struct{}),
	}
}

// Publish delivers msg to every currently attached subscriber without
// blocking. With no subscribers the message is discarded; that is not an
// error.
func (t *Topic[T]) Publish(msg T) {
	t.mu.RLock()
	for sub := range t.subs {
		sub.push(msg)
	}
	t.mu.RUnlock()

	metrics.HubPublishedTotal.WithLabelValues(t.name).Inc()
}

// Subscribe attaches a new subscriber. It observes every subsequent publish
// starting from the moment of attachment.
func (t *Topic[T]) Subscribe() *Subscription[T] {
	sub := &Subscription[T]{
		topic: t,
		ch:    make(chan T, t.capacity),
	}

	t.mu.Lock()
	t.subs[sub] = struct{}{}
	t.mu.Unlock()

	metrics.HubSubscribers.WithLabelValues(t.name).Inc()
	return sub
}

func (t *Topic[T]) detach(sub *Subscription[T]) bool {
	t.mu.Lock()
	_, attached := t.subs[sub]
	delete(t.subs, sub)
	t.mu.Unlock()

	if attached {
		metrics.HubSubscribers.WithLabelValues(t.name).Dec()
	}
	return attached
}

// Subscription is one subscriber's receive handle on a topic.
type Subscription[T any] struct {
	topic  *Topic[T]
	ch     chan T
	missed atomic.Uint64

	mu     sync.Mutex // serializes push and close
	closed bool
}

// C returns the receive channel. It is closed by Unsubscribe.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Missed returns the number of messages evicted from this subscription's
// buffer since the last call, resetting the count. A non-zero result means
// the subscriber lagged and permanently lost those messages.
func (s *Subscription[T]) Missed() uint64 {
	return s.missed.Swap(0)
}

// Unsubscribe detaches from the topic and closes the receive channel.
// Idempotent.
func (s *Subscription[T]) Unsubscribe() {
	s.topic.detach(s)

	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	s.mu.Unlock()
}

// push enqueues msg, evicting the oldest unread message if the buffer is
// full. Pushes are serialized per subscription, so the retry loop terminates.
func (s *Subscription[T]) push(msg T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	for {
		select {
		case s.ch <- msg:
			return
		default:
		}

		// Buffer full: drop the oldest unread message for this subscriber
		// only. The receiver may drain concurrently, in which case the
		// eviction hits nothing and the next send attempt succeeds.
		select {
		case <-s.ch:
			s.missed.Add(1)
			metrics.HubDroppedTotal.WithLabelValues(s.topic.name).Inc()
		default:
		}
	}
}
