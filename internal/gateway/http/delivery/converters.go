package delivery

import (
	"time"

	"fulfillment/internal/entities"
)

type routeStopDTO struct {
	PartyID       string            `json:"partyId"`
	PartyName     string            `json:"partyName"`
	Location      entities.GeoPoint `json:"location"`
	Address       string            `json:"address"`
	ScheduledTime time.Time         `json:"scheduledTime"`
	ActualTime    *time.Time        `json:"actualTime,omitempty"`
}

type deliveryDTO struct {
	ID            string `json:"id"`
	OrderID       string `json:"orderId"`
	OrderNumber   string `json:"orderNumber"`
	DistributorID string `json:"distributorId"`
	Driver        struct {
		ID    string `json:"id,omitempty"`
		Name  string `json:"name"`
		Phone string `json:"phone,omitempty"`
	} `json:"driver"`
	Vehicle struct {
		ID    string `json:"id,omitempty"`
		Type  string `json:"type"`
		Plate string `json:"plate,omitempty"`
	} `json:"vehicle"`
	Route struct {
		Pickup  routeStopDTO `json:"pickup"`
		Dropoff routeStopDTO `json:"delivery"`
	} `json:"route"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type deliveryEnvelope struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message,omitempty"`
	Delivery *deliveryDTO `json:"delivery,omitempty"`
}

func toDomain(dto *deliveryDTO) *entities.Delivery {
	if dto == nil {
		return nil
	}

	return &entities.Delivery{
		ID:          dto.ID,
		OrderID:     dto.OrderID,
		OrderNumber: dto.OrderNumber,
		Distributor: entities.DistributorRefFromWire(dto.DistributorID),
		Driver: entities.DriverInfo{
			ID:    dto.Driver.ID,
			Name:  dto.Driver.Name,
			Phone: dto.Driver.Phone,
		},
		Vehicle: entities.VehicleInfo{
			ID:    dto.Vehicle.ID,
			Type:  dto.Vehicle.Type,
			Plate: dto.Vehicle.Plate,
		},
		Route: entities.Route{
			Pickup:  toRouteStop(dto.Route.Pickup),
			Dropoff: toRouteStop(dto.Route.Dropoff),
		},
		Status:    entities.DeliveryStatusType(dto.Status),
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	}
}

func toRouteStop(dto routeStopDTO) entities.RouteStop {
	return entities.RouteStop{
		PartyID:       dto.PartyID,
		PartyName:     dto.PartyName,
		Location:      dto.Location,
		Address:       dto.Address,
		ScheduledTime: dto.ScheduledTime,
		ActualTime:    dto.ActualTime,
	}
}
