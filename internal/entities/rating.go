package entities

import "time"

type RatingType string

const (
	RatingFarmer   RatingType = "farmer"
	RatingDelivery RatingType = "delivery"
	RatingProduct  RatingType = "product"
	RatingDriver   RatingType = "driver"
)

func (t RatingType) String() string {
	return string(t)
}

func (t RatingType) Valid() bool {
	switch t {
	case RatingFarmer, RatingDelivery, RatingProduct, RatingDriver:
		return true
	default:
		return false
	}
}

// Rating is immutable once created; uniqueness is enforced on
// (orderId, raterId, type).
type Rating struct {
	ID        string
	OrderID   string
	RaterID   string
	RateeID   string
	Type      RatingType
	Score     int
	Comment   string
	CreatedAt time.Time
}
