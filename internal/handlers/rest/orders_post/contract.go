//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=orders_post_test
package orders_post

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
	CreateOrders(ctx context.Context, checkout entities.Checkout) ([]entities.Order, error)
}

type OrderCreate struct {
	CustomerID      string            `json:"customerId"`
	Items           []OrderCreateItem `json:"items"`
	DeliveryAddress string            `json:"deliveryAddress"`
	Notes           string            `json:"notes"`
}

type OrderCreateItem struct {
	FarmerID     string  `json:"farmerId"`
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Subtotal     float64 `json:"subtotal"`
}

type OrderCreateResponse struct {
	Success bool        `json:"success"`
	Orders  []dto.Order `json:"orders"`
}
