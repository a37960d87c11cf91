package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/entities"
	deliverygw "fulfillment/internal/gateway/http/delivery"
	"fulfillment/internal/pkg/sideeffect"
	"fulfillment/pkg/logger"
)

const (
	effectPickupAdvance  = "coordinator.pickup_advance"
	effectEnsureDelivery = "coordinator.ensure_delivery"
	effectMirrorOrder    = "coordinator.mirror_order"
	effectFleetRelease   = "coordinator.fleet_release"
)

// createRetryDelay is the fixed pause before the single retry of an
// on-demand delivery creation.
const createRetryDelay = 500 * time.Millisecond

// Coordinator stitches the order and delivery state machines together. All of
// its work is reactive and best-effort: a failed step is logged and recorded,
// never propagated back into the transition that triggered it.
type Coordinator struct {
	log        serviceLogger
	deliveries DeliveryGateway
	orders     OrderGateway
	fleet      FleetService
	recorder   sideeffect.Recorder
}

func New(
	log serviceLogger,
	deliveries DeliveryGateway,
	orders OrderGateway,
	fleet FleetService,
	recorder sideeffect.Recorder,
) *Coordinator {
	return &Coordinator{
		log:        log,
		deliveries: deliveries,
		orders:     orders,
		fleet:      fleet,
		recorder:   recorder,
	}
}

// HandleOrderReady moves the order's delivery to pickup_pending. A missing
// delivery is created on demand; a delivery already past scheduled makes the
// handoff an idempotent no-op.
func (c *Coordinator) HandleOrderReady(ctx context.Context, order entities.Order) error {
	deliveryEntity, err := c.deliveries.GetByOrderID(ctx, order.ID)
	if errors.Is(err, deliverygw.ErrDeliveryNotFound) {
		deliveryEntity, err = c.EnsureDelivery(ctx, order)
		if err != nil {
			// Logged-only: the handoff gives up and a later transition or a
			// manual action recovers the delivery.
			c.log.With(
				logger.NewField("orderId", order.ID),
				logger.NewField("error", err),
			).Error("pickup handoff gave up, delivery could not be created")
			return nil
		}
	} else if err != nil {
		return fmt.Errorf("%w: lookup delivery for order %s: %w", ErrHandoffFailed, order.ID, err)
	}

	if deliveryEntity.Status != entities.DeliveryScheduled {
		c.recorder.Record(effectPickupAdvance, sideeffect.OutcomeSkipped)
		return nil
	}

	_, err = c.deliveries.UpdateStatus(ctx, deliveryEntity.ID, entities.DeliveryPickupPending, "order ready for pickup")
	if err != nil {
		c.recorder.Record(effectPickupAdvance, sideeffect.OutcomeFailed)
		return fmt.Errorf("%w: advance delivery %s: %w", ErrHandoffFailed, deliveryEntity.ID, err)
	}

	c.recorder.Record(effectPickupAdvance, sideeffect.OutcomeOK)
	return nil
}

// EnsureDelivery creates the delivery for an order, retrying exactly once
// after a fixed delay. A duplicate counts as success.
func (c *Coordinator) EnsureDelivery(ctx context.Context, order entities.Order) (*entities.Delivery, error) {
	created, err := c.deliveries.Create(ctx, order)
	if err == nil {
		c.recorder.Record(effectEnsureDelivery, sideeffect.OutcomeOK)
		return created, nil
	}
	if errors.Is(err, deliverygw.ErrOrderAlreadyScheduled) {
		return c.existingDelivery(ctx, order.ID)
	}

	select {
	case <-time.After(createRetryDelay):
	case <-ctx.Done():
		c.recorder.Record(effectEnsureDelivery, sideeffect.OutcomeFailed)
		return nil, ctx.Err()
	}

	created, err = c.deliveries.Create(ctx, order)
	if err != nil {
		if errors.Is(err, deliverygw.ErrOrderAlreadyScheduled) {
			return c.existingDelivery(ctx, order.ID)
		}
		c.recorder.Record(effectEnsureDelivery, sideeffect.OutcomeFailed)
		return nil, fmt.Errorf("create delivery for order %s: %w", order.ID, err)
	}

	c.recorder.Record(effectEnsureDelivery, sideeffect.OutcomeOK)
	return created, nil
}

// MirrorDeliveryProgress applies delivery progress to the parent order through
// the order service's own transition guard.
func (c *Coordinator) MirrorDeliveryProgress(ctx context.Context, orderID string, status entities.DeliveryStatusType) error {
	target, ok := mirroredOrderStatus(status)
	if !ok {
		return nil
	}

	order, err := c.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		c.recorder.Record(effectMirrorOrder, sideeffect.OutcomeFailed)
		return fmt.Errorf("lookup order %s: %w", orderID, err)
	}

	if !order.Status.CanAdvanceTo(target) {
		c.recorder.Record(effectMirrorOrder, sideeffect.OutcomeSkipped)
		return nil
	}

	_, err = c.orders.UpdateStatus(ctx, orderID, target, "delivery progress")
	if err != nil {
		c.recorder.Record(effectMirrorOrder, sideeffect.OutcomeFailed)
		return fmt.Errorf("mirror order %s to %s: %w", orderID, target, err)
	}

	c.recorder.Record(effectMirrorOrder, sideeffect.OutcomeOK)
	return nil
}

// ReleaseFleet frees the driver and vehicle of a finished delivery.
func (c *Coordinator) ReleaseFleet(ctx context.Context, driverID, vehicleID string) error {
	release, err := c.fleet.ReleaseAfterDelivery(ctx, driverID, vehicleID)
	if err != nil {
		c.recorder.Record(effectFleetRelease, sideeffect.OutcomeFailed)
		return fmt.Errorf("release fleet: %w", err)
	}

	if !release.DriverReleased && !release.VehicleReleased {
		c.recorder.Record(effectFleetRelease, sideeffect.OutcomeSkipped)
		return nil
	}
	c.recorder.Record(effectFleetRelease, sideeffect.OutcomeOK)
	return nil
}

func (c *Coordinator) existingDelivery(ctx context.Context, orderID string) (*entities.Delivery, error) {
	c.recorder.Record(effectEnsureDelivery, sideeffect.OutcomeSkipped)

	deliveryEntity, err := c.deliveries.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("lookup existing delivery for order %s: %w", orderID, err)
	}
	return deliveryEntity, nil
}

func mirroredOrderStatus(status entities.DeliveryStatusType) (entities.OrderStatusType, bool) {
	switch status {
	case entities.DeliveryPickedUp, entities.DeliveryInTransit:
		return entities.OrderInTransit, true
	case entities.DeliveryDelivered:
		return entities.OrderDelivered, true
	default:
		return "", false
	}
}
