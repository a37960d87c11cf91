//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=ratings_get_test
package ratings_get

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/internal/handlers/rest/dto"
	"fulfillment/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ListByOrder(ctx context.Context, orderID string) ([]entities.Rating, error)
}

type RatingListResponse struct {
	Success bool         `json:"success"`
	Ratings []dto.Rating `json:"ratings"`
}
