//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=vehicles_post_test
package vehicles_post

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
	CreateVehicle(ctx context.Context, vehicle entities.Vehicle) (*entities.Vehicle, error)
}

type VehicleCreate struct {
	DistributorID string `json:"distributorId"`
	Plate         string `json:"plate"`
	Type          string `json:"type"`
}

type VehicleCreateResponse struct {
	Success bool        `json:"success"`
	Vehicle dto.Vehicle `json:"vehicle"`
}
