package coordinator

import (
	"context"
	"fmt"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/eventbus"
)

// HandleEvent is the bus-facing entry point. Every reaction is idempotent
// (guarded transitions, skip-on-no-op), so redelivered events are safe.
func (c *Coordinator) HandleEvent(ctx context.Context, event eventbus.Event) error {
	switch event.Topic {
	case eventbus.TopicOrderStatusUpdated:
		return c.onOrderStatusUpdated(ctx, event)
	case eventbus.TopicDeliveryStatusUpdated:
		return c.onDeliveryStatusUpdated(ctx, event)
	default:
		return nil
	}
}

func (c *Coordinator) onOrderStatusUpdated(ctx context.Context, event eventbus.Event) error {
	newStatus, err := stringField(event, "newStatus")
	if err != nil {
		return err
	}
	if entities.OrderStatusType(newStatus) != entities.OrderReadyForPickup {
		return nil
	}

	orderID, err := stringField(event, "orderId")
	if err != nil {
		return err
	}

	order, err := c.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("lookup order %s: %w", orderID, err)
	}

	return c.HandleOrderReady(ctx, *order)
}

func (c *Coordinator) onDeliveryStatusUpdated(ctx context.Context, event eventbus.Event) error {
	orderID, err := stringField(event, "orderId")
	if err != nil {
		return err
	}
	newStatus, err := stringField(event, "newStatus")
	if err != nil {
		return err
	}

	return c.MirrorDeliveryProgress(ctx, orderID, entities.DeliveryStatusType(newStatus))
}

func stringField(event eventbus.Event, key string) (string, error) {
	value, ok := event.Payload[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s in %s", ErrMissingEventField, key, event.Topic)
	}
	return value, nil
}
