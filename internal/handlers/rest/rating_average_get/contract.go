//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rating_average_get_test
package rating_average_get

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	AverageForRatee(ctx context.Context, rateeID string, ratingType entities.RatingType) (float64, int64, error)
}

type RatingAverageResponse struct {
	Success bool    `json:"success"`
	RateeID string  `json:"rateeId"`
	Type    string  `json:"type"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
