//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=fleet_test
package fleet

import (
	"context"

	"fulfillment/internal/entities"
)

type Repository interface {
	CreateDriver(ctx context.Context, driver entities.Driver) (*entities.Driver, error)
	GetDriverByID(ctx context.Context, id string) (*entities.Driver, error)
	UpdateDriver(ctx context.Context, driverModify entities.DriverModify) (*entities.Driver, error)
	ReleaseDriver(ctx context.Context, id string) (*entities.Driver, error)
	ResetDayCounters(ctx context.Context) (int64, error)
	ListDrivers(ctx context.Context, distributorID string) ([]entities.Driver, error)

	CreateVehicle(ctx context.Context, vehicle entities.Vehicle) (*entities.Vehicle, error)
	GetVehicleByID(ctx context.Context, id string) (*entities.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicleModify entities.VehicleModify) (*entities.Vehicle, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
