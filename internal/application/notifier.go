package application

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/shopscribe/credstore/internal/domain/model"
)

// Subscriber receives a fresh snapshot of the full key map after every
// successful mutation, even when only a single field changed.
type Subscriber func(model.APIKeys)

// Notifier fans out key-change notifications to subscribers in
// subscription order. Each callback invocation is isolated: a panic in
// one subscriber is recovered and logged, and never prevents the
// remaining subscribers from running.
type Notifier struct {
	mu     sync.Mutex
	logger *slog.Logger
	order  []uuid.UUID
	subs   map[uuid.UUID]Subscriber
}

// NewNotifier creates an empty Notifier.
func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{
		logger: logger,
		subs:   make(map[uuid.UUID]Subscriber),
	}
}

// Subscribe registers fn and returns its unsubscribe function. Calling
// unsubscribe more than once is harmless.
func (n *Notifier) Subscribe(fn Subscriber) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := uuid.New()
	n.order = append(n.order, id)
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()

		if _, ok := n.subs[id]; !ok {
			return
		}
		delete(n.subs, id)
		for i, other := range n.order {
			if other == id {
				n.order = append(n.order[:i], n.order[i+1:]...)
				break
			}
		}
	}
}

// Broadcast invokes every currently-subscribed callback once,
// synchronously, with the given snapshot.
func (n *Notifier) Broadcast(keys model.APIKeys) {
	n.mu.Lock()
	callbacks := make([]Subscriber, 0, len(n.order))
	for _, id := range n.order {
		callbacks = append(callbacks, n.subs[id])
	}
	n.mu.Unlock()

	for _, fn := range callbacks {
		n.invoke(fn, keys)
	}
}

// invoke runs one callback with panic isolation.
func (n *Notifier) invoke(fn Subscriber, keys model.APIKeys) {
	defer func() {
		if v := recover(); v != nil {
			n.logger.Error("key change subscriber panicked", "panic", v)
		}
	}()
	fn(keys)
}
