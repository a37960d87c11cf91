package order

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/eventbus"
	"fulfillment/internal/pkg/sideeffect"
	"fulfillment/pkg/logger"
)

const (
	effectPublishEvent     = "order.publish_event"
	effectNotifyParties    = "order.notify_parties"
	effectScheduleDelivery = "order.schedule_delivery"
	effectPickupHandoff    = "order.pickup_handoff"
)

const scheduleDeliveryTimeout = 10 * time.Second

type Order struct {
	log         serviceLogger
	repository  Repository
	publisher   EventPublisher
	directory   Directory
	deliveries  DeliveryScheduler
	coordinator PickupCoordinator
	notifier    Notifier
	numbers     NumberFactory
	recorder    sideeffect.Recorder
	txManager   TxManager
}

func New(
	log serviceLogger,
	repository Repository,
	publisher EventPublisher,
	directory Directory,
	deliveries DeliveryScheduler,
	coordinator PickupCoordinator,
	notifier Notifier,
	numbers NumberFactory,
	recorder sideeffect.Recorder,
	txManager TxManager,
) *Order {
	return &Order{
		log:         log,
		repository:  repository,
		publisher:   publisher,
		directory:   directory,
		deliveries:  deliveries,
		coordinator: coordinator,
		notifier:    notifier,
		numbers:     numbers,
		recorder:    recorder,
		txManager:   txManager,
	}
}

// CreateOrders splits a checkout into one order per farmer. Farmer display
// names and the customer's email address come from the directory on a
// best-effort basis. Delivery scheduling and the order.created events happen
// after the orders are committed and never fail the checkout.
func (o *Order) CreateOrders(ctx context.Context, checkout entities.Checkout) ([]entities.Order, error) {
	if err := validateCheckout(checkout); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	groups, farmerIDs := groupByFarmer(checkout.Items)

	customer := o.directory.GetContact(ctx, checkout.CustomerID)

	orders := make([]entities.Order, 0, len(farmerIDs))
	for _, farmerID := range farmerIDs {
		items := groups[farmerID]

		var total float64
		orderItems := make([]entities.OrderItem, 0, len(items))
		for _, item := range items {
			orderItems = append(orderItems, entities.OrderItem{
				ProductID:    item.ProductID,
				Name:         item.Name,
				Quantity:     item.Quantity,
				Unit:         item.Unit,
				PricePerUnit: item.PricePerUnit,
				Subtotal:     item.Subtotal,
			})
			total += item.Subtotal
		}

		contact := o.directory.GetContact(ctx, farmerID)

		orders = append(orders, entities.Order{
			Number:          o.numbers.Next(),
			CustomerID:      checkout.CustomerID,
			FarmerID:        farmerID,
			FarmerName:      contact.Name,
			Distributor:     entities.UnassignedDistributor(),
			Items:           orderItems,
			TotalAmount:     total,
			DeliveryAddress: checkout.DeliveryAddress,
			Notes:           checkout.Notes,
			Status:          entities.OrderPending,
			Timeline: []entities.TimelineEntry{
				entities.NewTimelineEntry(entities.OrderPending.String(), now, "order placed"),
			},
		})
	}

	created := make([]entities.Order, 0, len(orders))
	err := o.txManager.Do(ctx, func(ctx context.Context) error {
		for _, orderEntity := range orders {
			createdOrder, err := o.repository.Create(ctx, orderEntity)
			if err != nil {
				return fmt.Errorf("create order for farmer %s: %w", orderEntity.FarmerID, err)
			}
			created = append(created, *createdOrder)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range created {
		o.publishEvent(ctx, eventbus.TopicOrderCreated, createdEventPayload(&created[i], customer.Email))
		o.scheduleDelivery(ctx, created[i])
	}

	return created, nil
}

func (o *Order) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	if !isValidID(id) {
		return nil, ErrInvalidOrderID
	}
	return o.repository.GetByID(ctx, id)
}

func (o *Order) List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, int64, error) {
	return o.repository.List(ctx, filter)
}

// UpdateStatus advances the order along its lifecycle with a guarded
// compare-and-set, then runs the post-transition side effects. Each side
// effect is independently best-effort and its outcome is recorded.
func (o *Order) UpdateStatus(ctx context.Context, id string, next entities.OrderStatusType, note string) (*entities.Order, error) {
	if !isValidID(id) {
		return nil, ErrInvalidOrderID
	}
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := o.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanAdvanceTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrStatusConflict, current.Status, next)
	}

	entry := entities.NewTimelineEntry(next.String(), time.Now().UTC(), note)
	updated, err := o.repository.AdvanceStatus(ctx, id, current.Status, next, entry)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"orderId":        updated.ID,
		"orderNumber":    updated.Number,
		"customerId":     updated.CustomerID,
		"farmerId":       updated.FarmerID,
		"previousStatus": current.Status.String(),
		"newStatus":      next.String(),
	}
	// The notification engine only mails when the payload carries an address.
	if customer := o.directory.GetContact(ctx, updated.CustomerID); customer.Email != "" {
		payload["email"] = customer.Email
	}
	o.publishEvent(ctx, eventbus.TopicOrderStatusUpdated, payload)

	o.notifyParties(ctx, updated, fmt.Sprintf("Order %s is now %s", updated.Number, next))

	if next == entities.OrderReadyForPickup {
		o.pickupHandoff(ctx, updated)
	}

	return updated, nil
}

// Cancel is only allowed while the order has not started preparation.
func (o *Order) Cancel(ctx context.Context, id, reason string) (*entities.Order, error) {
	if !isValidID(id) {
		return nil, ErrInvalidOrderID
	}

	current, err := o.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status != entities.OrderPending && current.Status != entities.OrderConfirmed {
		return nil, fmt.Errorf("%w: status %s", ErrOrderNotPending, current.Status)
	}

	entry := entities.NewTimelineEntry(entities.OrderCancelled.String(), time.Now().UTC(), reason)
	updated, err := o.repository.AdvanceStatus(ctx, id, current.Status, entities.OrderCancelled, entry)
	if err != nil {
		return nil, err
	}

	o.publishEvent(ctx, eventbus.TopicOrderCancelled, map[string]any{
		"orderId":     updated.ID,
		"orderNumber": updated.Number,
		"customerId":  updated.CustomerID,
		"farmerId":    updated.FarmerID,
		"reason":      reason,
	})

	o.notifyParties(ctx, updated, fmt.Sprintf("Order %s was cancelled", updated.Number))

	return updated, nil
}

func (o *Order) publishEvent(ctx context.Context, topic string, payload map[string]any) {
	err := o.publisher.Publish(ctx, topic, payload)
	if err != nil {
		o.recorder.Record(effectPublishEvent, sideeffect.OutcomeFailed)
		o.log.With(
			logger.NewField("topic", topic),
			logger.NewField("error", err),
		).Warn("failed to publish order event")
		return
	}
	o.recorder.Record(effectPublishEvent, sideeffect.OutcomeOK)
}

func (o *Order) notifyParties(ctx context.Context, orderEntity *entities.Order, message string) {
	recipients := []string{orderEntity.CustomerID, orderEntity.FarmerID}
	for _, recipient := range recipients {
		err := o.notifier.Send(ctx, entities.Notification{
			Channel:   entities.NotifyUser,
			Recipient: recipient,
			Type:      "order_update",
			Title:     "Order update",
			Message:   message,
			Data:      map[string]any{"orderId": orderEntity.ID, "orderNumber": orderEntity.Number},
		})
		if err != nil {
			o.recorder.Record(effectNotifyParties, sideeffect.OutcomeFailed)
			o.log.With(
				logger.NewField("recipient", recipient),
				logger.NewField("error", err),
			).Warn("failed to notify order party")
			continue
		}
		o.recorder.Record(effectNotifyParties, sideeffect.OutcomeOK)
	}
}

// scheduleDelivery fires the delivery-creation request without holding up the
// checkout response. A failure is logged; the coordinator creates the missing
// delivery later if needed.
func (o *Order) scheduleDelivery(ctx context.Context, orderEntity entities.Order) {
	detached := context.WithoutCancel(ctx)

	go func() {
		ctx, cancel := context.WithTimeout(detached, scheduleDeliveryTimeout)
		defer cancel()

		_, err := o.deliveries.Create(ctx, orderEntity)
		if err != nil {
			o.recorder.Record(effectScheduleDelivery, sideeffect.OutcomeFailed)
			o.log.With(
				logger.NewField("orderId", orderEntity.ID),
				logger.NewField("error", err),
			).Warn("failed to schedule delivery")
			return
		}
		o.recorder.Record(effectScheduleDelivery, sideeffect.OutcomeOK)
	}()
}

func (o *Order) pickupHandoff(ctx context.Context, orderEntity *entities.Order) {
	err := o.coordinator.HandleOrderReady(ctx, *orderEntity)
	if err != nil {
		o.recorder.Record(effectPickupHandoff, sideeffect.OutcomeFailed)
		o.log.With(
			logger.NewField("orderId", orderEntity.ID),
			logger.NewField("error", err),
		).Warn("pickup handoff failed")
		return
	}
	o.recorder.Record(effectPickupHandoff, sideeffect.OutcomeOK)
}

func createdEventPayload(orderEntity *entities.Order, customerEmail string) map[string]any {
	payload := map[string]any{
		"orderId":         orderEntity.ID,
		"orderNumber":     orderEntity.Number,
		"customerId":      orderEntity.CustomerID,
		"farmerId":        orderEntity.FarmerID,
		"farmerName":      orderEntity.FarmerName,
		"totalAmount":     orderEntity.TotalAmount,
		"deliveryAddress": orderEntity.DeliveryAddress,
		"status":          orderEntity.Status.String(),
	}
	if customerEmail != "" {
		payload["email"] = customerEmail
	}
	return payload
}

// groupByFarmer buckets checkout items per farmer, keeping first-seen order
// stable so order numbers are assigned deterministically.
func groupByFarmer(items []entities.NewOrderItem) (map[string][]entities.NewOrderItem, []string) {
	groups := make(map[string][]entities.NewOrderItem, len(items))
	farmerIDs := make([]string, 0, len(items))

	for _, item := range items {
		if _, seen := groups[item.FarmerID]; !seen {
			farmerIDs = append(farmerIDs, item.FarmerID)
		}
		groups[item.FarmerID] = append(groups[item.FarmerID], item)
	}

	return groups, farmerIDs
}
