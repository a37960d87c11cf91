package order

import (
	"encoding/json"
	"fmt"

	"fulfillment/internal/entities"
)

func ToDomain(o *OrderDB) (*entities.Order, error) {
	if o == nil {
		return nil, nil
	}

	var items []entities.OrderItem
	if len(o.Items) > 0 {
		if err := json.Unmarshal(o.Items, &items); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
	}

	var timeline []entities.TimelineEntry
	if len(o.Timeline) > 0 {
		if err := json.Unmarshal(o.Timeline, &timeline); err != nil {
			return nil, fmt.Errorf("decode order timeline: %w", err)
		}
	}

	distributor := entities.UnassignedDistributor()
	if o.DistributorID != nil {
		distributor = entities.DistributorRefFromWire(*o.DistributorID)
	}

	return &entities.Order{
		ID:                 o.ID,
		Number:             o.Number,
		CustomerID:         o.CustomerID,
		FarmerID:           o.FarmerID,
		FarmerName:         o.FarmerName,
		Distributor:        distributor,
		Items:              items,
		TotalAmount:        o.TotalAmount,
		DeliveryAddress:    o.DeliveryAddress,
		Notes:              o.Notes,
		Status:             entities.OrderStatusType(o.Status),
		Timeline:           timeline,
		RatingEligible:     o.RatingEligible,
		ActualDeliveryTime: o.ActualDeliveryTime,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}, nil
}

func FromDomain(o *entities.Order) (*OrderDB, error) {
	if o == nil {
		return nil, nil
	}

	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}

	timeline := o.Timeline
	if timeline == nil {
		timeline = []entities.TimelineEntry{}
	}
	timelineRaw, err := json.Marshal(timeline)
	if err != nil {
		return nil, fmt.Errorf("encode order timeline: %w", err)
	}

	var distributorID *string
	if id, ok := o.Distributor.ID(); ok {
		distributorID = &id
	}

	return &OrderDB{
		ID:                 o.ID,
		Number:             o.Number,
		CustomerID:         o.CustomerID,
		FarmerID:           o.FarmerID,
		FarmerName:         o.FarmerName,
		DistributorID:      distributorID,
		Items:              items,
		TotalAmount:        o.TotalAmount,
		DeliveryAddress:    o.DeliveryAddress,
		Notes:              o.Notes,
		Status:             o.Status.String(),
		Timeline:           timelineRaw,
		RatingEligible:     o.RatingEligible,
		ActualDeliveryTime: o.ActualDeliveryTime,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}, nil
}

func ToDomainList(ordersDB []OrderDB) ([]entities.Order, error) {
	if len(ordersDB) == 0 {
		return []entities.Order{}, nil
	}

	result := make([]entities.Order, len(ordersDB))
	for i := range ordersDB {
		orderDomain, err := ToDomain(&ordersDB[i])
		if err != nil {
			return nil, err
		}
		result[i] = *orderDomain
	}
	return result, nil
}
