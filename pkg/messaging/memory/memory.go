package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/donorconnect/donor-api/pkg/messaging"
)

const bufferSize = 100

// Broker is an in-process fan-out broker for single-binary deployments and
// tests. A full subscriber buffer blocks Publish until ctx is done.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscriber]struct{}
	closed bool
}

type subscriber struct {
	ch   chan []byte
	done chan struct{}
	once sync.Once

	// mu is held shared by senders; close takes it exclusively so ch is
	// never closed under an in-flight send.
	mu     sync.RWMutex
	closed bool
}

func newSubscriber() *subscriber {
	return &subscriber{
		ch:   make(chan []byte, bufferSize),
		done: make(chan struct{}),
	}
}

func (s *subscriber) close() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()
	})
}

// send delivers payload unless the subscriber goes away or ctx ends first.
func (s *subscriber) send(ctx context.Context, payload []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil
	}
	select {
	case s.ch <- payload:
		return nil
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[*subscriber]struct{})}
}

var _ messaging.Broker = (*Broker)(nil)

func (b *Broker) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return messaging.ErrClosed
	}
	subs := make([]*subscriber, 0, len(b.subs[channel]))
	for sub := range b.subs[channel] {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.send(ctx, payload); err != nil {
			return err
		}
	}
	return nil
}

func (b *Broker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, messaging.ErrClosed
	}

	sub := newSubscriber()
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[*subscriber]struct{})
	}
	b.subs[channel][sub] = struct{}{}

	go func() {
		<-ctx.Done()
		b.unsubscribe(channel, sub)
	}()

	return sub.ch, nil
}

func (b *Broker) unsubscribe(channel string, sub *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[channel][sub]; ok {
		delete(b.subs[channel], sub)
		sub.close()
	}
}

// Close ends every subscription. Subscription goroutines exit once their
// contexts are done.
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for channel, subs := range b.subs {
		for sub := range subs {
			sub.close()
		}
		delete(b.subs, channel)
	}
	return nil
}
