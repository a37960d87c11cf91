package order

import (
	"time"

	"fulfillment/internal/entities"
)

type orderDTO struct {
	ID                 string     `json:"id"`
	Number             string     `json:"orderNumber"`
	CustomerID         string     `json:"customerId"`
	FarmerID           string     `json:"farmerId"`
	FarmerName         string     `json:"farmerName"`
	DistributorID      string     `json:"distributorId"`
	TotalAmount        float64    `json:"totalAmount"`
	DeliveryAddress    string     `json:"deliveryAddress"`
	Status             string     `json:"status"`
	RatingEligible     bool       `json:"ratingEligible"`
	ActualDeliveryTime *time.Time `json:"actualDeliveryTime,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type orderEnvelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Order   *orderDTO `json:"order,omitempty"`
}

func toDomain(dto *orderDTO) *entities.Order {
	if dto == nil {
		return nil
	}

	return &entities.Order{
		ID:                 dto.ID,
		Number:             dto.Number,
		CustomerID:         dto.CustomerID,
		FarmerID:           dto.FarmerID,
		FarmerName:         dto.FarmerName,
		Distributor:        entities.DistributorRefFromWire(dto.DistributorID),
		TotalAmount:        dto.TotalAmount,
		DeliveryAddress:    dto.DeliveryAddress,
		Status:             entities.OrderStatusType(dto.Status),
		RatingEligible:     dto.RatingEligible,
		ActualDeliveryTime: dto.ActualDeliveryTime,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
	}
}
