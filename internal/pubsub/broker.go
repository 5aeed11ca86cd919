package pubsub

import (
	"context"
	"sync"
)

const (
	// subBufferSize is the buffer size of the channel for each subscription.
	subBufferSize = 1024
)

// Broker allows clients to publish events and subscribe to events
type Broker[T any] struct {
	subs map[chan Event[T]]struct{} // subscriptions
	mu   sync.Mutex                 // sync access to map

	// dropped counts events that could not be delivered to a full subscriber.
	dropped int
}

func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{
		subs: make(map[chan Event[T]]struct{}),
	}
}

// Subscribe subscribes the caller to a stream of events. The subscription is
// closed when the context is canceled.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(chan Event[T], subBufferSize)
	b.subs[sub] = struct{}{}

	// when the context is canceled remove the subscriber
	go func() {
		<-ctx.Done()
		b.unsubscribe(sub)
	}()

	return sub
}

// Publish an event to subscribers.
//
// The broker never blocks: if a subscriber's buffer is full then the event is
// dropped for that subscriber. The logger publishes through this broker, so
// it cannot log about a full subscriber without recursing.
func (b *Broker[T]) Publish(t EventType, payload T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs {
		select {
		case sub <- Event[T]{Type: t, Payload: payload}:
		default:
			b.dropped++
		}
	}
}

// Dropped returns the number of events dropped thus far.
func (b *Broker[T]) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.dropped
}

func (b *Broker[T]) unsubscribe(sub chan Event[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub]; !ok {
		// already unsubscribed
		return
	}
	close(sub)
	delete(b.subs, sub)
}
