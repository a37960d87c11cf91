package entities

import "time"

type OrderStatusType string

const (
	OrderPending        OrderStatusType = "pending"
	OrderConfirmed      OrderStatusType = "confirmed"
	OrderPreparing      OrderStatusType = "preparing"
	OrderReadyForPickup OrderStatusType = "ready_for_pickup"
	OrderInTransit      OrderStatusType = "in_transit"
	OrderDelivered      OrderStatusType = "delivered"
	OrderCancelled      OrderStatusType = "cancelled"
)

func (s OrderStatusType) String() string {
	return string(s)
}

var orderStatusRank = map[OrderStatusType]int{
	OrderPending:        0,
	OrderConfirmed:      1,
	OrderPreparing:      2,
	OrderReadyForPickup: 3,
	OrderInTransit:      4,
	OrderDelivered:      5,
}

func (s OrderStatusType) Valid() bool {
	if s == OrderCancelled {
		return true
	}
	_, ok := orderStatusRank[s]
	return ok
}

// Terminal reports whether no further status mutation is permitted.
func (s OrderStatusType) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanAdvanceTo enforces the order lifecycle: the status is monotonic along
// pending < confirmed < preparing < ready_for_pickup < in_transit < delivered,
// with cancelled reachable only from pending or confirmed. Terminal statuses
// are frozen, and re-applying the current status is not an advance.
func (s OrderStatusType) CanAdvanceTo(next OrderStatusType) bool {
	if s.Terminal() {
		return false
	}
	if next == OrderCancelled {
		return s == OrderPending || s == OrderConfirmed
	}

	currentRank, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	nextRank, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return nextRank > currentRank
}

type OrderItem struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Subtotal     float64 `json:"subtotal"`
}

// NewOrderItem is an incoming checkout line; the farmer id decides which
// per-farmer Order the item lands in.
type NewOrderItem struct {
	FarmerID     string
	ProductID    string
	Name         string
	Quantity     float64
	Unit         string
	PricePerUnit float64
	Subtotal     float64
}

// Order is one (customer, farmer) pairing of a checkout. A checkout spanning
// multiple farmers produces multiple independent orders.
type Order struct {
	ID                 string
	Number             string
	CustomerID         string
	FarmerID           string
	FarmerName         string
	Distributor        DistributorRef
	Items              []OrderItem
	TotalAmount        float64
	DeliveryAddress    string
	Notes              string
	Status             OrderStatusType
	Timeline           []TimelineEntry
	RatingEligible     bool
	ActualDeliveryTime *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PreviousStatus returns the status recorded before the latest timeline entry,
// or the current status when the timeline has a single entry.
func (o *Order) PreviousStatus() OrderStatusType {
	if len(o.Timeline) < 2 {
		return o.Status
	}
	return OrderStatusType(o.Timeline[len(o.Timeline)-2].Status)
}

// Checkout is an incoming cart submission. Items may span several farmers;
// order creation splits them into per-farmer orders.
type Checkout struct {
	CustomerID      string
	Items           []NewOrderItem
	DeliveryAddress string
	Notes           string
}

// OrderFilter narrows order listings. Zero-valued fields are ignored.
type OrderFilter struct {
	CustomerID string
	FarmerID   string
	Status     *OrderStatusType
	Limit      uint64
	Offset     uint64
}

type OrderModify struct {
	ID                 *string
	Distributor        *DistributorRef
	Status             *OrderStatusType
	RatingEligible     *bool
	ActualDeliveryTime *time.Time
}
