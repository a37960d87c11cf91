//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_status_patch_test
package order_status_patch

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
	UpdateStatus(ctx context.Context, id string, next entities.OrderStatusType, note string) (*entities.Order, error)
}

type OrderStatusUpdate struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type OrderStatusUpdateResponse struct {
	Success bool      `json:"success"`
	Order   dto.Order `json:"order"`
}
