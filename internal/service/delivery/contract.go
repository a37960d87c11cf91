//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, delivery entities.Delivery) (*entities.Delivery, error)
	GetByID(ctx context.Context, id string) (*entities.Delivery, error)
	GetByOrderID(ctx context.Context, orderID string) (*entities.Delivery, error)
	List(ctx context.Context, filter entities.DeliveryFilter) ([]entities.Delivery, int64, error)
	AdvanceStatus(ctx context.Context, id string, expected, next entities.DeliveryStatusType, entry entities.TimelineEntry, extra entities.DeliveryModify) (*entities.Delivery, error)
	UpdateLocation(ctx context.Context, id string, location entities.GeoPoint, entry entities.TimelineEntry) (*entities.Delivery, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload map[string]any) error
}

// OrderGateway is the order side of the choreography: parent lookup for
// fan-out context and the guarded status mirroring call.
type OrderGateway interface {
	GetOrderByID(ctx context.Context, orderID string) (*entities.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatusType, note string) (*entities.Order, error)
}

type FleetService interface {
	ReleaseAfterDelivery(ctx context.Context, driverID, vehicleID string) (entities.FleetRelease, error)
}

type Notifier interface {
	Send(ctx context.Context, notification entities.Notification) error
}

type ScheduleFactory interface {
	Build(pickup, dropoff entities.RouteStop) entities.Route
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
