package entities

import "time"

type DeliveryStatusType string

const (
	DeliveryScheduled     DeliveryStatusType = "scheduled"
	DeliveryPickupPending DeliveryStatusType = "pickup_pending"
	DeliveryPickedUp      DeliveryStatusType = "picked_up"
	DeliveryInTransit     DeliveryStatusType = "in_transit"
	DeliveryArrived       DeliveryStatusType = "arrived"
	DeliveryDelivered     DeliveryStatusType = "delivered"
	DeliveryFailed        DeliveryStatusType = "failed"
)

func (s DeliveryStatusType) String() string {
	return string(s)
}

var deliveryStatusRank = map[DeliveryStatusType]int{
	DeliveryScheduled:     0,
	DeliveryPickupPending: 1,
	DeliveryPickedUp:      2,
	DeliveryInTransit:     3,
	DeliveryArrived:       4,
	DeliveryDelivered:     5,
}

func (s DeliveryStatusType) Valid() bool {
	if s == DeliveryFailed {
		return true
	}
	_, ok := deliveryStatusRank[s]
	return ok
}

func (s DeliveryStatusType) Terminal() bool {
	return s == DeliveryDelivered || s == DeliveryFailed
}

// CanAdvanceTo mirrors the order rules: monotonic along the happy path,
// failed reachable from any non-terminal status.
func (s DeliveryStatusType) CanAdvanceTo(next DeliveryStatusType) bool {
	if s.Terminal() {
		return false
	}
	if next == DeliveryFailed {
		return true
	}

	currentRank, ok := deliveryStatusRank[s]
	if !ok {
		return false
	}
	nextRank, ok := deliveryStatusRank[next]
	if !ok {
		return false
	}
	return nextRank > currentRank
}

// RouteStop is one endpoint of a delivery route. ActualTime is stamped exactly
// once: on pickup confirmation for the pickup stop, on completion for the
// dropoff stop.
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

type ProofOfDelivery struct {
	Signature string    `json:"signature,omitempty"`
	Photo     string    `json:"photo,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

// PlaceholderAssignee marks a driver or vehicle slot that has not been filled
// by a distributor yet.
const PlaceholderAssignee = "TBD"

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

// Delivery is the 1:1 companion of an Order, created asynchronously after the
// order. Consumers must tolerate it being absent at any given moment.
type Delivery struct {
	ID              string
	OrderID         string
	OrderNumber     string
	Distributor     DistributorRef
	Driver          DriverInfo
	Vehicle         VehicleInfo
	Route           Route
	Status          DeliveryStatusType
	Timeline        []TimelineEntry
	Proof           *ProofOfDelivery
	CurrentLocation *GeoPoint
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (d *Delivery) PreviousStatus() DeliveryStatusType {
	if len(d.Timeline) < 2 {
		return d.Status
	}
	return DeliveryStatusType(d.Timeline[len(d.Timeline)-2].Status)
}

// NewDelivery is the identity a delivery is scheduled from. Everything else
// (route schedule, placeholders, status) is derived.
type NewDelivery struct {
	OrderID         string
	OrderNumber     string
	CustomerID      string
	FarmerID        string
	FarmerName      string
	DeliveryAddress string
}

// DeliveryFilter narrows delivery listings. Zero-valued fields are ignored.
type DeliveryFilter struct {
	OrderID       string
	DistributorID string
	Status        *DeliveryStatusType
	Limit         uint64
	Offset        uint64
}

// DeliveryModify carries a partial delivery update; nil fields stay untouched.
type DeliveryModify struct {
	ID              *string
	Distributor     *DistributorRef
	Driver          *DriverInfo
	Vehicle         *VehicleInfo
	Status          *DeliveryStatusType
	PickupActual    *time.Time
	DropoffActual   *time.Time
	Proof           *ProofOfDelivery
	CurrentLocation *GeoPoint
}
