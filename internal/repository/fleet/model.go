package fleet

import "time"

type DriverDB struct {
	ID              string
	DistributorID   string
	Name            string
	Phone           string
	Status          string
	TotalDeliveries int64
	DeliveriesToday int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type VehicleDB struct {
	ID            string
	DistributorID string
	Plate         string
	Type          string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
