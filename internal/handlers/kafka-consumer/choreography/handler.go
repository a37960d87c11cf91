// Package choreography consumes the status events that drive the cross-service
// reactions: the pickup handoff when an order becomes ready, and mirroring
// delivery progress back onto the parent order.
package choreography

import (
	"time"

	"fulfillment/internal/pkg/eventbus/kafka"
)

// Both order.* and delivery.* status events are relevant, so the subscription
// takes everything and lets the coordinator ignore the rest. Reactions are
// idempotent, which makes redelivery safe.
const subscriptionPattern = "*"

func New(log handlerLogger, service Service, timeout time.Duration) *kafka.GroupHandler {
	return kafka.NewGroupHandler(log, subscriptionPattern, service.HandleEvent, timeout)
}
