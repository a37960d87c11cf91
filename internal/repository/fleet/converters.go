package fleet

import "fulfillment/internal/entities"

func ToDriverDomain(d *DriverDB) *entities.Driver {
	if d == nil {
		return nil
	}
	return &entities.Driver{
		ID:              d.ID,
		DistributorID:   d.DistributorID,
		Name:            d.Name,
		Phone:           d.Phone,
		Status:          entities.DriverStatusType(d.Status),
		TotalDeliveries: d.TotalDeliveries,
		DeliveriesToday: d.DeliveriesToday,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func ToVehicleDomain(v *VehicleDB) *entities.Vehicle {
	if v == nil {
		return nil
	}
	return &entities.Vehicle{
		ID:            v.ID,
		DistributorID: v.DistributorID,
		Plate:         v.Plate,
		Type:          v.Type,
		Status:        entities.VehicleStatusType(v.Status),
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func ToDriverDomainList(driversDB []DriverDB) []entities.Driver {
	if len(driversDB) == 0 {
		return []entities.Driver{}
	}

	result := make([]entities.Driver, len(driversDB))
	for i := range driversDB {
		result[i] = *ToDriverDomain(&driversDB[i])
	}
	return result
}

func ToVehicleDomainList(vehiclesDB []VehicleDB) []entities.Vehicle {
	if len(vehiclesDB) == 0 {
		return []entities.Vehicle{}
	}

	result := make([]entities.Vehicle, len(vehiclesDB))
	for i := range vehiclesDB {
		result[i] = *ToVehicleDomain(&vehiclesDB[i])
	}
	return result
}
