//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_status_patch_test
package delivery_status_patch

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/internal/handlers/rest/dto"
	"fulfillment/internal/service/delivery"
	"fulfillment/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	UpdateStatus(ctx context.Context, id string, update delivery.StatusUpdate) (*entities.Delivery, error)
}

// DeliveryStatusUpdate optionally lets the distributor adopt the delivery and
// assign a crew in the same call that moves the status.
type DeliveryStatusUpdate struct {
	Status        string           `json:"status"`
	Note          string           `json:"note"`
	DistributorID string           `json:"distributorId"`
	Driver        *dto.DriverInfo  `json:"driver"`
	Vehicle       *dto.VehicleInfo `json:"vehicle"`
}

type DeliveryStatusUpdateResponse struct {
	Success  bool         `json:"success"`
	Delivery dto.Delivery `json:"delivery"`
}
