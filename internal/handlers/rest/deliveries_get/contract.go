//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=deliveries_get_test
package deliveries_get

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
	List(ctx context.Context, filter entities.DeliveryFilter) ([]entities.Delivery, int64, error)
}

type DeliveryListResponse struct {
	Success    bool           `json:"success"`
	Deliveries []dto.Delivery `json:"deliveries"`
	Pagination dto.Pagination `json:"pagination"`
}
