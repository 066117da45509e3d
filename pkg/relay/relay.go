package relay

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// DefaultBuffer is the per-subscription channel buffer used when no
// WithBuffer option is given.
const DefaultBuffer = 100

// ErrNoSubscriber is returned by Ask when no initialized handler is
// subscribed to the request's kind. Messages are never retried.
var ErrNoSubscriber = errors.New("relay: no subscriber for message kind")

// Relay is the process-wide publish/subscribe bus. Subscribers receive
// messages over bounded channels; for a given kind, delivery happens in
// registration order. There is no delivery retry: a message with no active
// subscriber is dropped.
type Relay struct {
	mu     sync.RWMutex
	subs   map[Kind][]*Subscription
	buffer int
	logger *slog.Logger
}

// Option configures a Relay.
type Option func(*Relay)

// WithBuffer sets the per-subscription channel buffer size.
func WithBuffer(size int) Option {
	return func(r *Relay) {
		if size > 0 {
			r.buffer = size
		}
	}
}

// WithLogger sets the logger used for dropped-message reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

// New creates a Relay.
func New(opts ...Option) *Relay {
	r := &Relay{
		subs:   make(map[Kind][]*Subscription),
		buffer: DefaultBuffer,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscription is one subscriber's inbox. A single subscription may cover
// several kinds; all of them are delivered to the same channel.
type Subscription struct {
	kinds []Kind
	ch    chan Message
}

// C returns the receive side of the subscription's inbox.
func (s *Subscription) C() <-chan Message {
	return s.ch
}

// Subscribe registers an inbox for the given kinds. Registration order is
// preserved per kind.
func (r *Relay) Subscribe(kinds ...Kind) *Subscription {
	sub := &Subscription{
		kinds: kinds,
		ch:    make(chan Message, r.buffer),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range kinds {
		r.subs[k] = append(r.subs[k], sub)
	}
	return sub
}

// Unsubscribe removes the subscription from every kind it covers and closes
// its inbox. Unsubscribing twice is a no-op.
func (r *Relay) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := false
	for _, k := range sub.kinds {
		list := r.subs[k]
		for i, s := range list {
			if s == sub {
				r.subs[k] = append(list[:i], list[i+1:]...)
				removed = true
				break
			}
		}
		if len(r.subs[k]) == 0 {
			delete(r.subs, k)
		}
	}
	if removed {
		close(sub.ch)
	}
}

// Publish delivers msg to every subscriber of its kind, in registration
// order. It reports whether at least one subscriber received the message.
// A full inbox drops the message for that subscriber.
func (r *Relay) Publish(msg Message) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := r.subs[msg.Kind()]
	if len(subs) == 0 {
		if r.logger != nil {
			r.logger.Debug("message dropped, no subscriber", "kind", msg.Kind().String())
		}
		return false
	}

	delivered := false
	for _, sub := range subs {
		select {
		case sub.ch <- msg:
			delivered = true
		default:
			if r.logger != nil {
				r.logger.Warn("subscriber inbox full, message dropped", "kind", msg.Kind().String())
			}
		}
	}
	return delivered
}

// Ask publishes a request built around a fresh reply channel and waits for
// the typed response. This is the request/response idiom layered over the
// bus: exactly one subscriber is expected to reply.
func Ask[R any](ctx context.Context, r *Relay, build func(reply chan<- R) Message) (R, error) {
	var zero R

	reply := make(chan R, 1)
	if !r.Publish(build(reply)) {
		return zero, ErrNoSubscriber
	}

	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
