package pubsub

import (
	"context"
	"sync"
)

const bufferSize = 64

// Broker is an in-memory publish/subscribe hub carrying typed events from the
// ingestion coordinator and the session runtime to the presentation layer.
type Broker[T any] struct {
	mu   sync.RWMutex
	subs map[chan Event[T]]struct{}
	done chan struct{}
}

// NewBroker creates a broker with the default channel buffer size.
func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{
		subs: make(map[chan Event[T]]struct{}),
		done: make(chan struct{}),
	}
}

// Shutdown stops the broker and closes every subscriber channel.
func (b *Broker[T]) Shutdown() {
	select {
	case <-b.done:
		return
	default:
		close(b.done)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}

// Subscribe registers a subscriber. The returned channel closes when ctx ends
// or the broker shuts down.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.done:
		ch := make(chan Event[T])
		close(ch)
		return ch
	default:
	}

	sub := make(chan Event[T], bufferSize)
	b.subs[sub] = struct{}{}

	go func() {
		<-ctx.Done()

		b.mu.Lock()
		defer b.mu.Unlock()

		select {
		case <-b.done:
			return
		default:
		}

		if _, ok := b.subs[sub]; ok {
			delete(b.subs, sub)
			close(sub)
		}
	}()

	return sub
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish fans an event out to all active subscribers without blocking.
// Progress events drop when a subscriber's buffer is full; consumers tolerate
// that because each one carries the full cumulative state, not a delta.
// Terminal events (finished, failed) must land, so they evict the oldest
// buffered event until there is room. Delivery holds the read lock so no
// subscriber channel closes mid-send.
func (b *Broker[T]) Publish(t EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	select {
	case <-b.done:
		return
	default:
	}

	event := Event[T]{Type: t, Payload: payload}
	terminal := t == FinishedEvent || t == FailedEvent

	for sub := range b.subs {
		if !terminal {
			select {
			case sub <- event:
			default:
			}
			continue
		}
		for delivered := false; !delivered; {
			select {
			case sub <- event:
				delivered = true
			default:
				select {
				case <-sub:
				default:
				}
			}
		}
	}
}
