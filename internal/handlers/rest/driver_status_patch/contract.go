//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_status_patch_test
package driver_status_patch

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
	UpdateDriverStatus(ctx context.Context, id string, status entities.DriverStatusType) (*entities.Driver, error)
}

type DriverStatusUpdate struct {
	Status string `json:"status"`
}

type DriverStatusUpdateResponse struct {
	Success bool       `json:"success"`
	Driver  dto.Driver `json:"driver"`
}
