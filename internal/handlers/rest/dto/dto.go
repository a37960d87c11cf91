// Package dto holds the wire representations shared by the REST handlers.
package dto

import (
	"time"

	"fulfillment/internal/entities"
)

type Pagination struct {
	Total  int64  `json:"total"`
	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset"`
}

type TimelineEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type OrderItem struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Subtotal     float64 `json:"subtotal"`
}

type Order struct {
	ID                 string          `json:"id"`
	Number             string          `json:"orderNumber"`
	CustomerID         string          `json:"customerId"`
	FarmerID           string          `json:"farmerId"`
	FarmerName         string          `json:"farmerName"`
	DistributorID      string          `json:"distributorId"`
	Items              []OrderItem     `json:"items"`
	TotalAmount        float64         `json:"totalAmount"`
	DeliveryAddress    string          `json:"deliveryAddress"`
	Notes              string          `json:"notes,omitempty"`
	Status             string          `json:"status"`
	Timeline           []TimelineEntry `json:"timeline"`
	RatingEligible     bool            `json:"ratingEligible"`
	ActualDeliveryTime *time.Time      `json:"actualDeliveryTime,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

type RouteStop struct {
	PartyID       string     `json:"partyId"`
	PartyName     string     `json:"partyName"`
	Location      GeoPoint   `json:"location"`
	Address       string     `json:"address"`
	ScheduledTime time.Time  `json:"scheduledTime"`
	ActualTime    *time.Time `json:"actualTime,omitempty"`
}

type Route struct {
	Pickup  RouteStop `json:"pickup"`
	Dropoff RouteStop `json:"delivery"`
}

type DriverInfo struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type VehicleInfo struct {
	ID    string `json:"id,omitempty"`
	Type  string `json:"type"`
	Plate string `json:"plate,omitempty"`
}

type ProofOfDelivery struct {
	Signature string    `json:"signature,omitempty"`
	Photo     string    `json:"photo,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

type Delivery struct {
	ID              string           `json:"id"`
	OrderID         string           `json:"orderId"`
	OrderNumber     string           `json:"orderNumber"`
	DistributorID   string           `json:"distributorId"`
	Driver          DriverInfo       `json:"driver"`
	Vehicle         VehicleInfo      `json:"vehicle"`
	Route           Route            `json:"route"`
	Status          string           `json:"status"`
	Timeline        []TimelineEntry  `json:"timeline"`
	Proof           *ProofOfDelivery `json:"proofOfDelivery,omitempty"`
	CurrentLocation *GeoPoint        `json:"currentLocation,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type Rating struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	RaterID   string    `json:"raterId"`
	RateeID   string    `json:"rateeId"`
	Type      string    `json:"type"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Driver struct {
	ID              string    `json:"id"`
	DistributorID   string    `json:"distributorId"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone,omitempty"`
	Status          string    `json:"status"`
	TotalDeliveries int64     `json:"totalDeliveries"`
	DeliveriesToday int64     `json:"deliveriesToday"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Vehicle struct {
	ID            string    `json:"id"`
	DistributorID string    `json:"distributorId"`
	Plate         string    `json:"plate"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func FromOrder(o *entities.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItem(item))
	}

	return Order{
		ID:                 o.ID,
		Number:             o.Number,
		CustomerID:         o.CustomerID,
		FarmerID:           o.FarmerID,
		FarmerName:         o.FarmerName,
		DistributorID:      o.Distributor.Wire(),
		Items:              items,
		TotalAmount:        o.TotalAmount,
		DeliveryAddress:    o.DeliveryAddress,
		Notes:              o.Notes,
		Status:             o.Status.String(),
		Timeline:           fromTimeline(o.Timeline),
		RatingEligible:     o.RatingEligible,
		ActualDeliveryTime: o.ActualDeliveryTime,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func FromOrderList(orders []entities.Order) []Order {
	result := make([]Order, 0, len(orders))
	for i := range orders {
		result = append(result, FromOrder(&orders[i]))
	}
	return result
}

func FromDelivery(d *entities.Delivery) Delivery {
	var proof *ProofOfDelivery
	if d.Proof != nil {
		converted := ProofOfDelivery(*d.Proof)
		proof = &converted
	}

	var location *GeoPoint
	if d.CurrentLocation != nil {
		converted := GeoPoint(*d.CurrentLocation)
		location = &converted
	}

	return Delivery{
		ID:            d.ID,
		OrderID:       d.OrderID,
		OrderNumber:   d.OrderNumber,
		DistributorID: d.Distributor.Wire(),
		Driver:        DriverInfo(d.Driver),
		Vehicle:       VehicleInfo(d.Vehicle),
		Route: Route{
			Pickup:  fromRouteStop(d.Route.Pickup),
			Dropoff: fromRouteStop(d.Route.Dropoff),
		},
		Status:          d.Status.String(),
		Timeline:        fromTimeline(d.Timeline),
		Proof:           proof,
		CurrentLocation: location,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func FromDeliveryList(deliveries []entities.Delivery) []Delivery {
	result := make([]Delivery, 0, len(deliveries))
	for i := range deliveries {
		result = append(result, FromDelivery(&deliveries[i]))
	}
	return result
}

func FromRating(r *entities.Rating) Rating {
	return Rating{
		ID:        r.ID,
		OrderID:   r.OrderID,
		RaterID:   r.RaterID,
		RateeID:   r.RateeID,
		Type:      r.Type.String(),
		Score:     r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func FromDriver(d *entities.Driver) Driver {
	return Driver{
		ID:              d.ID,
		DistributorID:   d.DistributorID,
		Name:            d.Name,
		Phone:           d.Phone,
		Status:          d.Status.String(),
		TotalDeliveries: d.TotalDeliveries,
		DeliveriesToday: d.DeliveriesToday,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func FromDriverList(drivers []entities.Driver) []Driver {
	result := make([]Driver, 0, len(drivers))
	for i := range drivers {
		result = append(result, FromDriver(&drivers[i]))
	}
	return result
}

func FromVehicle(v *entities.Vehicle) Vehicle {
	return Vehicle{
		ID:            v.ID,
		DistributorID: v.DistributorID,
		Plate:         v.Plate,
		Type:          v.Type,
		Status:        v.Status.String(),
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func fromTimeline(timeline []entities.TimelineEntry) []TimelineEntry {
	result := make([]TimelineEntry, 0, len(timeline))
	for _, entry := range timeline {
		result = append(result, TimelineEntry(entry))
	}
	return result
}

func fromRouteStop(stop entities.RouteStop) RouteStop {
	return RouteStop{
		PartyID:       stop.PartyID,
		PartyName:     stop.PartyName,
		Location:      GeoPoint(stop.Location),
		Address:       stop.Address,
		ScheduledTime: stop.ScheduledTime,
		ActualTime:    stop.ActualTime,
	}
}
