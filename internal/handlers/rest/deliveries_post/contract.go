//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=deliveries_post_test
package deliveries_post

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
	Create(ctx context.Context, request entities.NewDelivery) (*entities.Delivery, error)
}

type DeliveryCreate struct {
	OrderID         string `json:"orderId"`
	OrderNumber     string `json:"orderNumber"`
	CustomerID      string `json:"customerId"`
	FarmerID        string `json:"farmerId"`
	FarmerName      string `json:"farmerName"`
	DeliveryAddress string `json:"deliveryAddress"`
}

type DeliveryCreateResponse struct {
	Success  bool         `json:"success"`
	Delivery dto.Delivery `json:"delivery"`
}
