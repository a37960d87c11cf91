//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_complete_patch_test
package delivery_complete_patch

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
	Complete(ctx context.Context, id string, proof entities.ProofOfDelivery) (*entities.Delivery, error)
}

type DeliveryComplete struct {
	Signature string `json:"signature"`
	Photo     string `json:"photo"`
	Notes     string `json:"notes"`
}

type DeliveryCompleteResponse struct {
	Success  bool         `json:"success"`
	Delivery dto.Delivery `json:"delivery"`
}
