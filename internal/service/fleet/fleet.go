package fleet

import (
	"context"
	"fmt"

	"fulfillment/internal/entities"
)

type Fleet struct {
	repository Repository
	txManager  TxManager
}

func New(repository Repository, txManager TxManager) *Fleet {
	return &Fleet{
		repository: repository,
		txManager:  txManager,
	}
}

func (f *Fleet) CreateDriver(ctx context.Context, driver entities.Driver) (*entities.Driver, error) {
	if !isValidID(driver.DistributorID) || !isValidID(driver.Name) {
		return nil, ErrMissingRequiredFields
	}
	if driver.Status == "" {
		driver.Status = entities.DriverAvailable
	}

	return f.repository.CreateDriver(ctx, driver)
}

func (f *Fleet) GetDriver(ctx context.Context, id string) (*entities.Driver, error) {
	if !isValidID(id) {
		return nil, ErrInvalidDriverID
	}
	return f.repository.GetDriverByID(ctx, id)
}

func (f *Fleet) ListDrivers(ctx context.Context, distributorID string) ([]entities.Driver, error) {
	return f.repository.ListDrivers(ctx, distributorID)
}

func (f *Fleet) CreateVehicle(ctx context.Context, vehicle entities.Vehicle) (*entities.Vehicle, error) {
	if !isValidID(vehicle.DistributorID) || !isValidID(vehicle.Plate) {
		return nil, ErrMissingRequiredFields
	}
	if vehicle.Status == "" {
		vehicle.Status = entities.VehicleAvailable
	}

	return f.repository.CreateVehicle(ctx, vehicle)
}

func (f *Fleet) UpdateDriverStatus(ctx context.Context, id string, status entities.DriverStatusType) (*entities.Driver, error) {
	if !isValidID(id) {
		return nil, ErrInvalidDriverID
	}
	switch status {
	case entities.DriverAvailable, entities.DriverOnRoute, entities.DriverScheduled, entities.DriverOffDuty:
	default:
		return nil, ErrInvalidStatus
	}

	driverModify := entities.DriverModify{
		ID:     &id,
		Status: &status,
	}
	return f.repository.UpdateDriver(ctx, driverModify)
}

// ReleaseAfterDelivery frees the driver and vehicle assigned to a completed
// delivery. An off-duty driver and a non-active vehicle are left alone;
// placeholder assignments are skipped entirely.
func (f *Fleet) ReleaseAfterDelivery(ctx context.Context, driverID, vehicleID string) (entities.FleetRelease, error) {
	var result entities.FleetRelease

	err := f.txManager.Do(ctx, func(ctx context.Context) error {
		if isAssignable(driverID) {
			driver, err := f.repository.GetDriverByID(ctx, driverID)
			if err != nil {
				return fmt.Errorf("get driver: %w", err)
			}

			if driver.Status != entities.DriverOffDuty {
				_, err = f.repository.ReleaseDriver(ctx, driverID)
				if err != nil {
					return fmt.Errorf("release driver: %w", err)
				}
				result.DriverReleased = true
			}
		}

		if isAssignable(vehicleID) {
			vehicle, err := f.repository.GetVehicleByID(ctx, vehicleID)
			if err != nil {
				return fmt.Errorf("get vehicle: %w", err)
			}

			if vehicle.Status == entities.VehicleActive {
				availableStatus := entities.VehicleAvailable
				vehicleModify := entities.VehicleModify{
					ID:     &vehicleID,
					Status: &availableStatus,
				}
				_, err = f.repository.UpdateVehicle(ctx, vehicleModify)
				if err != nil {
					return fmt.Errorf("release vehicle: %w", err)
				}
				result.VehicleReleased = true
			}
		}

		return nil
	})
	if err != nil {
		return entities.FleetRelease{}, err
	}

	return result, nil
}

// ResetDayCounters zeroes per-day delivery counters; meant for the daily
// background task.
func (f *Fleet) ResetDayCounters(ctx context.Context) (int64, error) {
	affected, err := f.repository.ResetDayCounters(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset day counters: %w", err)
	}
	return affected, nil
}
