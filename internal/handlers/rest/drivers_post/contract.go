//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=drivers_post_test
package drivers_post

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
	CreateDriver(ctx context.Context, driver entities.Driver) (*entities.Driver, error)
}

type DriverCreate struct {
	DistributorID string `json:"distributorId"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
}

type DriverCreateResponse struct {
	Success bool       `json:"success"`
	Driver  dto.Driver `json:"driver"`
}
