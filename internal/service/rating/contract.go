//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rating_test
package rating

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, rating entities.Rating) (*entities.Rating, error)
	GetByOrderID(ctx context.Context, orderID string) ([]entities.Rating, error)
	AverageForRatee(ctx context.Context, rateeID string, ratingType entities.RatingType) (float64, int64, error)
}

type OrderService interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload map[string]any) error
}

type serviceLogger interface {
	Warn(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
