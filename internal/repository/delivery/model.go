package delivery

import "time"

type DeliveryDB struct {
	ID              string
	OrderID         string
	OrderNumber     string
	DistributorID   *string
	Driver          []byte
	Vehicle         []byte
	Route           []byte
	Status          string
	Timeline        []byte
	Proof           []byte
	CurrentLocation []byte
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
