package route_schedule

import (
	"time"

	"fulfillment/internal/entities"
)

const (
	pickupOffset  = 24 * time.Hour
	dropoffOffset = 48 * time.Hour
)

// Factory builds the initial route for a delivery: pickup at the farm a day
// out, dropoff at the customer two days out. Actual times are filled in later
// as the driver progresses.
type Factory struct {
	now func() time.Time
}

func New() *Factory {
	return &Factory{now: time.Now}
}

func (f *Factory) Build(pickup, dropoff entities.RouteStop) entities.Route {
	now := f.now().UTC()

	pickup.ScheduledTime = now.Add(pickupOffset)
	dropoff.ScheduledTime = now.Add(dropoffOffset)

	return entities.Route{
		Pickup:  pickup,
		Dropoff: dropoff,
	}
}
