package memory

import (
	"context"
	"sync"
	"time"

	"fulfillment/internal/pkg/eventbus"
)

type subscription struct {
	pattern string
	handler eventbus.Handler
}

// Bus is an in-process event bus. It dispatches synchronously to every
// matching subscription and records published events, which makes it a drop-in
// fake for tests asserting on the choreography's event traffic.
type Bus struct {
	mu        sync.Mutex
	subs      []subscription
	published []eventbus.Event
}

func New() *Bus {
	return &Bus{}
}

func (b *Bus) Publish(ctx context.Context, topic string, payload map[string]any) error {
	event := eventbus.Event{
		Topic:     topic,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}

	b.mu.Lock()
	b.published = append(b.published, event)
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, sub := range subs {
		if !eventbus.MatchTopic(sub.pattern, topic) {
			continue
		}
		dispatch(ctx, sub.handler, event)
	}
	return nil
}

func (b *Bus) Subscribe(_, pattern string, handler eventbus.Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs = append(b.subs, subscription{pattern: pattern, handler: handler})
	return nil
}

// Published returns a copy of every event published so far.
func (b *Bus) Published() []eventbus.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	events := make([]eventbus.Event, len(b.published))
	copy(events, b.published)
	return events
}

// PublishedTopics returns the topics of published events in publish order.
func (b *Bus) PublishedTopics() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	topics := make([]string, 0, len(b.published))
	for _, event := range b.published {
		topics = append(topics, event.Topic)
	}
	return topics
}

// dispatch mirrors the transport contract: a panicking or failing handler
// never propagates to the publisher, and the event counts as consumed.
func dispatch(ctx context.Context, handler eventbus.Handler, event eventbus.Event) {
	defer func() {
		_ = recover()
	}()

	_ = handler(ctx, event)
}
