package order

import "time"

type OrderDB struct {
	ID                 string
	Number             string
	CustomerID         string
	FarmerID           string
	FarmerName         string
	DistributorID      *string
	Items              []byte
	TotalAmount        float64
	DeliveryAddress    string
	Notes              string
	Status             string
	Timeline           []byte
	RatingEligible     bool
	ActualDeliveryTime *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
