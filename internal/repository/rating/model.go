package rating

import "time"

type RatingDB struct {
	ID        string
	OrderID   string
	RaterID   string
	RateeID   string
	Type      string
	Score     int
	Comment   string
	CreatedAt time.Time
}
