// Package notification_fanout consumes every domain event and hands it to the
// notification engine, which decides who gets pushed and who gets mailed.
package notification_fanout

import (
	"time"

	"fulfillment/internal/pkg/eventbus/kafka"
)

// subscriptionPattern matches every routing key: the engine itself routes by
// event type and fans out to nobody for types it does not know.
const subscriptionPattern = "*"

func New(log handlerLogger, service Service, timeout time.Duration) *kafka.GroupHandler {
	return kafka.NewGroupHandler(log, subscriptionPattern, service.ConsumeEvent, timeout)
}
