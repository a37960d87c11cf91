//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, order entities.Order) (*entities.Order, error)
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, int64, error)
	AdvanceStatus(ctx context.Context, id string, expected, next entities.OrderStatusType, entry entities.TimelineEntry) (*entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload map[string]any) error
}

type Directory interface {
	GetContact(ctx context.Context, userID string) entities.Contact
}

// DeliveryScheduler asks the delivery side to schedule transport for an order.
type DeliveryScheduler interface {
	Create(ctx context.Context, order entities.Order) (*entities.Delivery, error)
}

// PickupCoordinator runs the handoff when an order becomes ready for pickup.
type PickupCoordinator interface {
	HandleOrderReady(ctx context.Context, order entities.Order) error
}

type Notifier interface {
	Send(ctx context.Context, notification entities.Notification) error
}

type NumberFactory interface {
	Next() string
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
