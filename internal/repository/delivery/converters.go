package delivery

import (
	"encoding/json"
	"fmt"

	"fulfillment/internal/entities"
)

func ToDomain(d *DeliveryDB) (*entities.Delivery, error) {
	if d == nil {
		return nil, nil
	}

	var driver entities.DriverInfo
	if len(d.Driver) > 0 {
		if err := json.Unmarshal(d.Driver, &driver); err != nil {
			return nil, fmt.Errorf("decode delivery driver: %w", err)
		}
	}

	var vehicle entities.VehicleInfo
	if len(d.Vehicle) > 0 {
		if err := json.Unmarshal(d.Vehicle, &vehicle); err != nil {
			return nil, fmt.Errorf("decode delivery vehicle: %w", err)
		}
	}

	var route entities.Route
	if len(d.Route) > 0 {
		if err := json.Unmarshal(d.Route, &route); err != nil {
			return nil, fmt.Errorf("decode delivery route: %w", err)
		}
	}

	var timeline []entities.TimelineEntry
	if len(d.Timeline) > 0 {
		if err := json.Unmarshal(d.Timeline, &timeline); err != nil {
			return nil, fmt.Errorf("decode delivery timeline: %w", err)
		}
	}

	var proof *entities.ProofOfDelivery
	if len(d.Proof) > 0 {
		proof = &entities.ProofOfDelivery{}
		if err := json.Unmarshal(d.Proof, proof); err != nil {
			return nil, fmt.Errorf("decode delivery proof: %w", err)
		}
	}

	var currentLocation *entities.GeoPoint
	if len(d.CurrentLocation) > 0 {
		currentLocation = &entities.GeoPoint{}
		if err := json.Unmarshal(d.CurrentLocation, currentLocation); err != nil {
			return nil, fmt.Errorf("decode delivery location: %w", err)
		}
	}

	distributor := entities.UnassignedDistributor()
	if d.DistributorID != nil {
		distributor = entities.DistributorRefFromWire(*d.DistributorID)
	}

	return &entities.Delivery{
		ID:              d.ID,
		OrderID:         d.OrderID,
		OrderNumber:     d.OrderNumber,
		Distributor:     distributor,
		Driver:          driver,
		Vehicle:         vehicle,
		Route:           route,
		Status:          entities.DeliveryStatusType(d.Status),
		Timeline:        timeline,
		Proof:           proof,
		CurrentLocation: currentLocation,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

func FromDomain(d *entities.Delivery) (*DeliveryDB, error) {
	if d == nil {
		return nil, nil
	}

	driver, err := json.Marshal(d.Driver)
	if err != nil {
		return nil, fmt.Errorf("encode delivery driver: %w", err)
	}

	vehicle, err := json.Marshal(d.Vehicle)
	if err != nil {
		return nil, fmt.Errorf("encode delivery vehicle: %w", err)
	}

	route, err := json.Marshal(d.Route)
	if err != nil {
		return nil, fmt.Errorf("encode delivery route: %w", err)
	}

	timeline := d.Timeline
	if timeline == nil {
		timeline = []entities.TimelineEntry{}
	}
	timelineRaw, err := json.Marshal(timeline)
	if err != nil {
		return nil, fmt.Errorf("encode delivery timeline: %w", err)
	}

	var proof []byte
	if d.Proof != nil {
		proof, err = json.Marshal(d.Proof)
		if err != nil {
			return nil, fmt.Errorf("encode delivery proof: %w", err)
		}
	}

	var currentLocation []byte
	if d.CurrentLocation != nil {
		currentLocation, err = json.Marshal(d.CurrentLocation)
		if err != nil {
			return nil, fmt.Errorf("encode delivery location: %w", err)
		}
	}

	var distributorID *string
	if id, ok := d.Distributor.ID(); ok {
		distributorID = &id
	}

	return &DeliveryDB{
		ID:              d.ID,
		OrderID:         d.OrderID,
		OrderNumber:     d.OrderNumber,
		DistributorID:   distributorID,
		Driver:          driver,
		Vehicle:         vehicle,
		Route:           route,
		Status:          d.Status.String(),
		Timeline:        timelineRaw,
		Proof:           proof,
		CurrentLocation: currentLocation,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

func ToDomainList(deliveriesDB []DeliveryDB) ([]entities.Delivery, error) {
	if len(deliveriesDB) == 0 {
		return []entities.Delivery{}, nil
	}

	result := make([]entities.Delivery, len(deliveriesDB))
	for i := range deliveriesDB {
		deliveryDomain, err := ToDomain(&deliveriesDB[i])
		if err != nil {
			return nil, err
		}
		result[i] = *deliveryDomain
	}
	return result, nil
}
