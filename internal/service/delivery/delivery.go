package delivery

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/eventbus"
	"fulfillment/internal/pkg/sideeffect"
	"fulfillment/pkg/logger"
)

const (
	effectPublishEvent = "delivery.publish_event"
	effectMirrorOrder  = "delivery.mirror_order"
	effectNotifyFanout = "delivery.notify_fanout"
	effectFleetRelease = "delivery.fleet_release"
)

const distributorRole = "distributor"

// StatusUpdate is one transition request. The distributor may adopt the
// delivery (and fill in driver/vehicle) in the same call that moves the
// status forward.
type StatusUpdate struct {
	Status      entities.DeliveryStatusType
	Note        string
	Distributor *entities.DistributorRef
	Driver      *entities.DriverInfo
	Vehicle     *entities.VehicleInfo
}

type Delivery struct {
	log        serviceLogger
	repository Repository
	publisher  EventPublisher
	orders     OrderGateway
	fleet      FleetService
	notifier   Notifier
	schedule   ScheduleFactory
	recorder   sideeffect.Recorder
}

func New(
	log serviceLogger,
	repository Repository,
	publisher EventPublisher,
	orders OrderGateway,
	fleet FleetService,
	notifier Notifier,
	schedule ScheduleFactory,
	recorder sideeffect.Recorder,
) *Delivery {
	return &Delivery{
		log:        log,
		repository: repository,
		publisher:  publisher,
		orders:     orders,
		fleet:      fleet,
		notifier:   notifier,
		schedule:   schedule,
		recorder:   recorder,
	}
}

// Create schedules transport for an order: route endpoints from the order
// identity, placeholder driver and vehicle, no distributor yet.
func (d *Delivery) Create(ctx context.Context, request entities.NewDelivery) (*entities.Delivery, error) {
	if !isValidID(request.OrderID) || !isValidID(request.OrderNumber) {
		return nil, ErrMissingRequiredFields
	}

	now := time.Now().UTC()
	route := d.schedule.Build(
		entities.RouteStop{
			PartyID:   request.FarmerID,
			PartyName: request.FarmerName,
		},
		entities.RouteStop{
			PartyID: request.CustomerID,
			Address: request.DeliveryAddress,
		},
	)

	deliveryEntity := entities.Delivery{
		OrderID:     request.OrderID,
		OrderNumber: request.OrderNumber,
		Distributor: entities.UnassignedDistributor(),
		Driver:      entities.DriverInfo{Name: entities.PlaceholderAssignee},
		Vehicle:     entities.VehicleInfo{Type: entities.PlaceholderAssignee},
		Route:       route,
		Status:      entities.DeliveryScheduled,
		Timeline: []entities.TimelineEntry{
			entities.NewTimelineEntry(entities.DeliveryScheduled.String(), now, "delivery scheduled"),
		},
	}

	created, err := d.repository.Create(ctx, deliveryEntity)
	if err != nil {
		return nil, err
	}

	d.publishEvent(ctx, eventbus.TopicDeliveryCreated, map[string]any{
		"deliveryId":  created.ID,
		"orderId":     created.OrderID,
		"orderNumber": created.OrderNumber,
		"status":      created.Status.String(),
	})

	return created, nil
}

func (d *Delivery) GetByID(ctx context.Context, id string) (*entities.Delivery, error) {
	if !isValidID(id) {
		return nil, ErrInvalidDeliveryID
	}
	return d.repository.GetByID(ctx, id)
}

func (d *Delivery) GetByOrderID(ctx context.Context, orderID string) (*entities.Delivery, error) {
	if !isValidID(orderID) {
		return nil, ErrMissingRequiredFields
	}
	return d.repository.GetByOrderID(ctx, orderID)
}

func (d *Delivery) List(ctx context.Context, filter entities.DeliveryFilter) ([]entities.Delivery, int64, error) {
	return d.repository.List(ctx, filter)
}

// UpdateStatus advances the delivery with a guarded compare-and-set and then
// runs the shared post-transition pipeline. Actual stop times are stamped
// exactly once: pickup on in_transit, dropoff on delivered.
func (d *Delivery) UpdateStatus(ctx context.Context, id string, update StatusUpdate) (*entities.Delivery, error) {
	if !isValidID(id) {
		return nil, ErrInvalidDeliveryID
	}
	if !update.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := d.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanAdvanceTo(update.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrStatusConflict, current.Status, update.Status)
	}

	now := time.Now().UTC()
	extra := entities.DeliveryModify{
		Distributor: update.Distributor,
		Driver:      update.Driver,
		Vehicle:     update.Vehicle,
	}
	if update.Status == entities.DeliveryInTransit && current.Route.Pickup.ActualTime == nil {
		extra.PickupActual = &now
	}
	if update.Status == entities.DeliveryDelivered && current.Route.Dropoff.ActualTime == nil {
		extra.DropoffActual = &now
	}

	entry := entities.NewTimelineEntry(update.Status.String(), now, update.Note)
	updated, err := d.repository.AdvanceStatus(ctx, id, current.Status, update.Status, entry, extra)
	if err != nil {
		return nil, err
	}

	d.runPipeline(ctx, current.Status, updated)

	return updated, nil
}

// Complete forces the delivery to delivered with proof attached, running the
// same pipeline as UpdateStatus plus the delivery.completed event.
func (d *Delivery) Complete(ctx context.Context, id string, proof entities.ProofOfDelivery) (*entities.Delivery, error) {
	if !isValidID(id) {
		return nil, ErrInvalidDeliveryID
	}

	current, err := d.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status.Terminal() {
		return nil, fmt.Errorf("%w: status %s", ErrNotDeliverable, current.Status)
	}

	now := time.Now().UTC()
	if proof.Timestamp.IsZero() {
		proof.Timestamp = now
	}

	extra := entities.DeliveryModify{
		Proof: &proof,
	}
	if current.Route.Dropoff.ActualTime == nil {
		extra.DropoffActual = &now
	}

	entry := entities.NewTimelineEntry(entities.DeliveryDelivered.String(), now, "delivery completed")
	updated, err := d.repository.AdvanceStatus(ctx, id, current.Status, entities.DeliveryDelivered, entry, extra)
	if err != nil {
		return nil, err
	}

	d.runPipeline(ctx, current.Status, updated)

	d.publishEvent(ctx, eventbus.TopicDeliveryCompleted, map[string]any{
		"deliveryId":  updated.ID,
		"orderId":     updated.OrderID,
		"orderNumber": updated.OrderNumber,
	})

	return updated, nil
}

func (d *Delivery) UpdateLocation(ctx context.Context, id string, location entities.GeoPoint) (*entities.Delivery, error) {
	if !isValidID(id) {
		return nil, ErrInvalidDeliveryID
	}
	if !isValidLocation(location) {
		return nil, ErrInvalidLocation
	}

	entry := entities.NewTimelineEntry(
		"location_update",
		time.Now().UTC(),
		fmt.Sprintf("position %.5f,%.5f", location.Lat, location.Lng),
	)

	return d.repository.UpdateLocation(ctx, id, location, entry)
}

// runPipeline is the single post-transition path shared by UpdateStatus and
// Complete: mirror the parent order, fan notifications out, release the fleet
// on delivered, publish the status event. Every step is best-effort and its
// outcome recorded; a failing step never rolls the transition back.
func (d *Delivery) runPipeline(ctx context.Context, previous entities.DeliveryStatusType, updated *entities.Delivery) {
	parent := d.lookupParentOrder(ctx, updated.OrderID)

	d.mirrorOrder(ctx, parent, updated)
	d.notifyFanout(ctx, parent, updated)

	if updated.Status == entities.DeliveryDelivered {
		d.releaseFleet(ctx, updated)
	}

	d.publishEvent(ctx, eventbus.TopicDeliveryStatusUpdated, map[string]any{
		"deliveryId":     updated.ID,
		"orderId":        updated.OrderID,
		"orderNumber":    updated.OrderNumber,
		"previousStatus": previous.String(),
		"newStatus":      updated.Status.String(),
	})
}

func (d *Delivery) lookupParentOrder(ctx context.Context, orderID string) *entities.Order {
	parent, err := d.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		d.log.With(
			logger.NewField("orderId", orderID),
			logger.NewField("error", err),
		).Warn("parent order lookup failed")
		return nil
	}
	return parent
}

// mirrorOrder keeps the customer-facing order status in sync with delivery
// progress. The order service applies its own transition guard, so an order
// already at or past the mirrored status is a skip, not a failure.
func (d *Delivery) mirrorOrder(ctx context.Context, parent *entities.Order, updated *entities.Delivery) {
	target, ok := mirroredOrderStatus(updated.Status)
	if !ok {
		return
	}

	if parent == nil {
		d.recorder.Record(effectMirrorOrder, sideeffect.OutcomeFailed)
		return
	}

	if !parent.Status.CanAdvanceTo(target) {
		d.recorder.Record(effectMirrorOrder, sideeffect.OutcomeSkipped)
		return
	}

	_, err := d.orders.UpdateStatus(ctx, updated.OrderID, target, "delivery progress")
	if err != nil {
		d.recorder.Record(effectMirrorOrder, sideeffect.OutcomeFailed)
		d.log.With(
			logger.NewField("orderId", updated.OrderID),
			logger.NewField("target", target),
			logger.NewField("error", err),
		).Warn("order status mirroring failed")
		return
	}

	d.recorder.Record(effectMirrorOrder, sideeffect.OutcomeOK)
}

func (d *Delivery) notifyFanout(ctx context.Context, parent *entities.Order, updated *entities.Delivery) {
	message := fmt.Sprintf("Delivery for order %s is now %s", updated.OrderNumber, updated.Status)

	notifications := []entities.Notification{
		{Channel: entities.NotifyRole, Recipient: distributorRole},
	}
	if distributorID, ok := updated.Distributor.ID(); ok {
		notifications = append(notifications, entities.Notification{
			Channel: entities.NotifyUser, Recipient: distributorID,
		})
	}

	farmerID := updated.Route.Pickup.PartyID
	customerID := updated.Route.Dropoff.PartyID
	if parent != nil {
		farmerID = parent.FarmerID
		customerID = parent.CustomerID
	}
	if farmerID != "" {
		notifications = append(notifications, entities.Notification{
			Channel: entities.NotifyUser, Recipient: farmerID,
		})
	}
	if customerID != "" {
		notifications = append(notifications, entities.Notification{
			Channel: entities.NotifyUser, Recipient: customerID,
		})
	}

	// The recipients are independent, so the sends go out in parallel. Each
	// failure is recorded on its own and never fails the fan-out.
	var group errgroup.Group
	for _, notification := range notifications {
		notification.Type = "delivery_update"
		notification.Title = "Delivery update"
		notification.Message = message
		notification.Data = map[string]any{
			"deliveryId": updated.ID,
			"orderId":    updated.OrderID,
			"status":     updated.Status.String(),
		}

		group.Go(func() error {
			err := d.notifier.Send(ctx, notification)
			if err != nil {
				d.recorder.Record(effectNotifyFanout, sideeffect.OutcomeFailed)
				d.log.With(
					logger.NewField("channel", notification.Channel),
					logger.NewField("recipient", notification.Recipient),
					logger.NewField("error", err),
				).Warn("delivery notification failed")
				return nil
			}
			d.recorder.Record(effectNotifyFanout, sideeffect.OutcomeOK)
			return nil
		})
	}
	_ = group.Wait()
}

func (d *Delivery) releaseFleet(ctx context.Context, updated *entities.Delivery) {
	release, err := d.fleet.ReleaseAfterDelivery(ctx, updated.Driver.ID, updated.Vehicle.ID)
	if err != nil {
		d.recorder.Record(effectFleetRelease, sideeffect.OutcomeFailed)
		d.log.With(
			logger.NewField("deliveryId", updated.ID),
			logger.NewField("error", err),
		).Warn("fleet release failed")
		return
	}

	if !release.DriverReleased && !release.VehicleReleased {
		d.recorder.Record(effectFleetRelease, sideeffect.OutcomeSkipped)
		return
	}
	d.recorder.Record(effectFleetRelease, sideeffect.OutcomeOK)
}

func (d *Delivery) publishEvent(ctx context.Context, topic string, payload map[string]any) {
	err := d.publisher.Publish(ctx, topic, payload)
	if err != nil {
		d.recorder.Record(effectPublishEvent, sideeffect.OutcomeFailed)
		d.log.With(
			logger.NewField("topic", topic),
			logger.NewField("error", err),
		).Warn("failed to publish delivery event")
		return
	}
	d.recorder.Record(effectPublishEvent, sideeffect.OutcomeOK)
}

// mirroredOrderStatus maps delivery progress onto the order lifecycle.
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
