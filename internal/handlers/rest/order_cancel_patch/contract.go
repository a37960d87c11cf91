//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_cancel_patch_test
package order_cancel_patch

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
	Cancel(ctx context.Context, id, reason string) (*entities.Order, error)
}

type OrderCancel struct {
	Reason string `json:"reason"`
}

type OrderCancelResponse struct {
	Success bool      `json:"success"`
	Order   dto.Order `json:"order"`
}
