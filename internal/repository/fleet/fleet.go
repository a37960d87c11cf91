package fleet

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fulfillment/internal/entities"
	"fulfillment/internal/repository"
	"fulfillment/internal/service/fleet"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	driverColumns  = `id, distributor_id, name, phone, status, total_deliveries, deliveries_today, created_at, updated_at`
	vehicleColumns = `id, distributor_id, plate, type, status, created_at, updated_at`
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) CreateDriver(ctx context.Context, driver entities.Driver) (*entities.Driver, error) {
	if driver.ID == "" {
		driver.ID = uuid.NewString()
	}

	query := `
		INSERT INTO drivers (id, distributor_id, name, phone, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + driverColumns

	var driverDB DriverDB
	err := r.querier.QueryRow(
		ctx,
		query,
		driver.ID,
		driver.DistributorID,
		driver.Name,
		driver.Phone,
		driver.Status.String(),
	).Scan(driverScanTargets(&driverDB)...)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, fleet.ErrConflict
		}
		return nil, fmt.Errorf("unexpected fleet repository create driver error: %w", err)
	}

	return ToDriverDomain(&driverDB), nil
}

func (r *Repository) GetDriverByID(ctx context.Context, id string) (*entities.Driver, error) {
	query := `
		SELECT ` + driverColumns + `
		FROM drivers
		WHERE id = $1`

	var driverDB DriverDB
	err := r.querier.QueryRow(ctx, query, id).Scan(driverScanTargets(&driverDB)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fleet.ErrDriverNotFound
		}
		return nil, fmt.Errorf("unexpected fleet repository get driver error: %w", err)
	}

	return ToDriverDomain(&driverDB), nil
}

func (r *Repository) UpdateDriver(ctx context.Context, driverModify entities.DriverModify) (*entities.Driver, error) {
	builder := qb.
		Update("drivers")

	// optional fields
	if driverModify.Status != nil {
		builder = builder.Set("status", driverModify.Status.String())
	}
	if driverModify.TotalDeliveries != nil {
		builder = builder.Set("total_deliveries", *driverModify.TotalDeliveries)
	}
	if driverModify.DeliveriesToday != nil {
		builder = builder.Set("deliveries_today", *driverModify.DeliveriesToday)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": driverModify.ID}).
		Suffix("RETURNING " + driverColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected fleet repository update driver error: %w", err)
	}

	var driverDB DriverDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(driverScanTargets(&driverDB)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fleet.ErrDriverNotFound
		}
		return nil, fmt.Errorf("unexpected fleet repository update driver error: %w", err)
	}

	return ToDriverDomain(&driverDB), nil
}

// ReleaseDriver marks the driver available again and bumps both delivery
// counters in the same statement.
func (r *Repository) ReleaseDriver(ctx context.Context, id string) (*entities.Driver, error) {
	query := `
		UPDATE drivers
		SET status = 'available',
			total_deliveries = total_deliveries + 1,
			deliveries_today = deliveries_today + 1,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + driverColumns

	var driverDB DriverDB
	err := r.querier.QueryRow(ctx, query, id).Scan(driverScanTargets(&driverDB)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fleet.ErrDriverNotFound
		}
		return nil, fmt.Errorf("unexpected fleet repository release driver error: %w", err)
	}

	return ToDriverDomain(&driverDB), nil
}

// ResetDayCounters zeroes deliveries_today across the fleet and reports how
// many drivers were touched.
func (r *Repository) ResetDayCounters(ctx context.Context) (int64, error) {
	query := `
		UPDATE drivers
		SET deliveries_today = 0,
			updated_at = NOW()
		WHERE deliveries_today > 0`

	result, err := r.querier.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("unexpected fleet repository reset day counters error: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *Repository) ListDrivers(ctx context.Context, distributorID string) ([]entities.Driver, error) {
	builder := qb.
		Select(driverColumns).
		From("drivers").
		OrderBy("id")
	if distributorID != "" {
		builder = builder.Where(sq.Eq{"distributor_id": distributorID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected fleet repository list drivers error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected fleet repository list drivers error: %w", err)
	}
	defer rows.Close()

	driversDB := make([]DriverDB, 0, 8)
	for rows.Next() {
		var driverDB DriverDB
		err := rows.Scan(driverScanTargets(&driverDB)...)
		if err != nil {
			return nil, fmt.Errorf("unexpected fleet repository list drivers error: %w", err)
		}
		driversDB = append(driversDB, driverDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected fleet repository list drivers error: %w", err)
	}

	return ToDriverDomainList(driversDB), nil
}

func (r *Repository) CreateVehicle(ctx context.Context, vehicle entities.Vehicle) (*entities.Vehicle, error) {
	if vehicle.ID == "" {
		vehicle.ID = uuid.NewString()
	}

	query := `
		INSERT INTO vehicles (id, distributor_id, plate, type, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + vehicleColumns

	var vehicleDB VehicleDB
	err := r.querier.QueryRow(
		ctx,
		query,
		vehicle.ID,
		vehicle.DistributorID,
		vehicle.Plate,
		vehicle.Type,
		vehicle.Status.String(),
	).Scan(vehicleScanTargets(&vehicleDB)...)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, fleet.ErrConflict
		}
		return nil, fmt.Errorf("unexpected fleet repository create vehicle error: %w", err)
	}

	return ToVehicleDomain(&vehicleDB), nil
}

func (r *Repository) GetVehicleByID(ctx context.Context, id string) (*entities.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE id = $1`

	var vehicleDB VehicleDB
	err := r.querier.QueryRow(ctx, query, id).Scan(vehicleScanTargets(&vehicleDB)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fleet.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("unexpected fleet repository get vehicle error: %w", err)
	}

	return ToVehicleDomain(&vehicleDB), nil
}

func (r *Repository) UpdateVehicle(ctx context.Context, vehicleModify entities.VehicleModify) (*entities.Vehicle, error) {
	builder := qb.
		Update("vehicles")

	if vehicleModify.Status != nil {
		builder = builder.Set("status", vehicleModify.Status.String())
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": vehicleModify.ID}).
		Suffix("RETURNING " + vehicleColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected fleet repository update vehicle error: %w", err)
	}

	var vehicleDB VehicleDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(vehicleScanTargets(&vehicleDB)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fleet.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("unexpected fleet repository update vehicle error: %w", err)
	}

	return ToVehicleDomain(&vehicleDB), nil
}

func driverScanTargets(d *DriverDB) []interface{} {
	return []interface{}{
		&d.ID,
		&d.DistributorID,
		&d.Name,
		&d.Phone,
		&d.Status,
		&d.TotalDeliveries,
		&d.DeliveriesToday,
		&d.CreatedAt,
		&d.UpdatedAt,
	}
}

func vehicleScanTargets(v *VehicleDB) []interface{} {
	return []interface{}{
		&v.ID,
		&v.DistributorID,
		&v.Plate,
		&v.Type,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	}
}
