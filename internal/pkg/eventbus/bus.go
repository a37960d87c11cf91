package eventbus

import (
	"context"
	"strings"
	"time"
)

// Topics published by the fulfillment choreography. The routing key format is
// <aggregate>.<event>.
const (
	TopicOrderCreated          = "order.created"
	TopicOrderStatusUpdated    = "order.status_updated"
	TopicOrderCancelled        = "order.cancelled"
	TopicDeliveryCreated       = "delivery.created"
	TopicDeliveryStatusUpdated = "delivery.status_updated"
	TopicDeliveryCompleted     = "delivery.completed"
	TopicRatingCreated         = "rating.created"
	TopicInspectionScheduled   = "inspection.scheduled"
)

// Event is an ephemeral domain event. The topic tag is mandatory: consumers
// never infer the event type from the payload shape.
type Event struct {
	Topic     string
	Payload   map[string]any
	Timestamp time.Time
}

// Handler processes one event. Delivery is at-least-once, so handlers must be
// idempotent or tolerate duplicate side effects. A returned error is logged by
// the transport and the event is still considered consumed.
type Handler func(ctx context.Context, event Event) error

// Publisher is fire-and-forget from the business caller's perspective: the
// triggering state change must already be committed, and call sites log and
// swallow publish errors instead of surfacing them.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload map[string]any) error
}

// Subscriber registers a handler on a named queue for every event whose topic
// matches the routing pattern. Each (queue, pattern) registration runs
// independently of request/response cycles.
type Subscriber interface {
	Subscribe(queue, pattern string, handler Handler) error
}

// MatchTopic matches a routing pattern against a topic. A bare "*" matches
// everything; otherwise segments are compared one by one and a "*" segment
// matches exactly one topic segment ("order.*" matches "order.created" but not
// "order" or "order.a.b").
func MatchTopic(pattern, topic string) bool {
	if pattern == "*" {
		return true
	}

	patternSegs := strings.Split(pattern, ".")
	topicSegs := strings.Split(topic, ".")
	if len(patternSegs) != len(topicSegs) {
		return false
	}

	for i, seg := range patternSegs {
		if seg == "*" {
			continue
		}
		if seg != topicSegs[i] {
			return false
		}
	}
	return true
}
