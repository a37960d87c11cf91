//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_location_patch_test
package delivery_location_patch

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
	UpdateLocation(ctx context.Context, id string, location entities.GeoPoint) (*entities.Delivery, error)
}

type LocationUpdate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type LocationUpdateResponse struct {
	Success  bool         `json:"success"`
	Delivery dto.Delivery `json:"delivery"`
}
