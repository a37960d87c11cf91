//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=coordinator_test
package coordinator

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
)

type DeliveryGateway interface {
	Create(ctx context.Context, order entities.Order) (*entities.Delivery, error)
	GetByOrderID(ctx context.Context, orderID string) (*entities.Delivery, error)
	UpdateStatus(ctx context.Context, deliveryID string, status entities.DeliveryStatusType, note string) (*entities.Delivery, error)
}

type OrderGateway interface {
	GetOrderByID(ctx context.Context, orderID string) (*entities.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatusType, note string) (*entities.Order, error)
}

type FleetService interface {
	ReleaseAfterDelivery(ctx context.Context, driverID, vehicleID string) (entities.FleetRelease, error)
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
