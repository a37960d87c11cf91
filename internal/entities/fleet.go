package entities

import "time"

type DriverStatusType string

const (
	DriverAvailable DriverStatusType = "available"
	DriverOnRoute   DriverStatusType = "on_route"
	DriverScheduled DriverStatusType = "scheduled"
	DriverOffDuty   DriverStatusType = "off_duty"
)

func (s DriverStatusType) String() string {
	return string(s)
}

type VehicleStatusType string

const (
	VehicleActive      VehicleStatusType = "active"
	VehicleAvailable   VehicleStatusType = "available"
	VehicleMaintenance VehicleStatusType = "maintenance"
)

func (s VehicleStatusType) String() string {
	return string(s)
}

// Driver is a long-lived fleet entity scoped to a distributor. The delivery
// counters are maintained by the fleet auto-release step, not by the state
// machines directly.
type Driver struct {
	ID              string
	DistributorID   string
	Name            string
	Phone           string
	Status          DriverStatusType
	TotalDeliveries int64
	DeliveriesToday int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Vehicle struct {
	ID            string
	DistributorID string
	Plate         string
	Type          string
	Status        VehicleStatusType
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FleetRelease reports what a post-delivery release actually freed.
type FleetRelease struct {
	DriverReleased  bool
	VehicleReleased bool
}

type DriverModify struct {
	ID              *string
	Status          *DriverStatusType
	TotalDeliveries *int64
	DeliveriesToday *int64
}

type VehicleModify struct {
	ID     *string
	Status *VehicleStatusType
}
