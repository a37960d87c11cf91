package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fulfillment/internal/entities"
	"fulfillment/internal/repository"
	"fulfillment/internal/service/delivery"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const deliveryColumns = `id, order_id, order_number, distributor_id, driver, vehicle,
		route, status, timeline, proof, current_location, created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, deliveryEntity entities.Delivery) (*entities.Delivery, error) {
	if deliveryEntity.ID == "" {
		deliveryEntity.ID = uuid.NewString()
	}

	deliveryDB, err := FromDomain(&deliveryEntity)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository create error: %w", err)
	}

	query := `
		INSERT INTO deliveries (id, order_id, order_number, distributor_id, driver, vehicle,
			route, status, timeline, proof, current_location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + deliveryColumns

	var created DeliveryDB
	err = r.querier.QueryRow(
		ctx,
		query,
		deliveryDB.ID,
		deliveryDB.OrderID,
		deliveryDB.OrderNumber,
		deliveryDB.DistributorID,
		deliveryDB.Driver,
		deliveryDB.Vehicle,
		deliveryDB.Route,
		deliveryDB.Status,
		deliveryDB.Timeline,
		deliveryDB.Proof,
		deliveryDB.CurrentLocation,
	).Scan(scanTargets(&created)...)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, delivery.ErrOrderAlreadyScheduled
		}
		return nil, fmt.Errorf("unexpected delivery repository create error: %w", err)
	}

	return ToDomain(&created)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE id = $1`

	var deliveryDB DeliveryDB
	err := r.querier.QueryRow(ctx, query, id).Scan(scanTargets(&deliveryDB)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository getbyid error: %w", err)
	}

	return ToDomain(&deliveryDB)
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*entities.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE order_id = $1`

	var deliveryDB DeliveryDB
	err := r.querier.QueryRow(ctx, query, orderID).Scan(scanTargets(&deliveryDB)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository getbyorderid error: %w", err)
	}

	return ToDomain(&deliveryDB)
}

func (r *Repository) List(ctx context.Context, filter entities.DeliveryFilter) ([]entities.Delivery, int64, error) {
	conditions := sq.And{}
	if filter.OrderID != "" {
		conditions = append(conditions, sq.Eq{"order_id": filter.OrderID})
	}
	if filter.DistributorID != "" {
		conditions = append(conditions, sq.Eq{"distributor_id": filter.DistributorID})
	}
	if filter.Status != nil {
		conditions = append(conditions, sq.Eq{"status": filter.Status.String()})
	}

	total, err := r.countDeliveries(ctx, conditions)
	if err != nil {
		return nil, 0, err
	}

	builder := qb.
		Select(deliveryColumns).
		From("deliveries").
		OrderBy("created_at DESC")
	if len(conditions) > 0 {
		builder = builder.Where(conditions)
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}
	defer rows.Close()

	deliveriesDB := make([]DeliveryDB, 0, 8)
	for rows.Next() {
		var deliveryDB DeliveryDB
		err := rows.Scan(scanTargets(&deliveryDB)...)
		if err != nil {
			return nil, 0, fmt.Errorf("unexpected delivery repository list error: %w", err)
		}
		deliveriesDB = append(deliveriesDB, deliveryDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, 0, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}

	deliveries, err := ToDomainList(deliveriesDB)
	if err != nil {
		return nil, 0, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}
	return deliveries, total, nil
}

// AdvanceStatus moves the delivery from expected to next in a single guarded
// statement, appending the timeline entry and any stage side effects (actual
// stop times, proof, location) atomically. A row that no longer carries the
// expected status is left untouched.
func (r *Repository) AdvanceStatus(ctx context.Context, id string, expected, next entities.DeliveryStatusType, entry entities.TimelineEntry, extra entities.DeliveryModify) (*entities.Delivery, error) {
	entryRaw, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository advance status error: %w", err)
	}

	builder := qb.
		Update("deliveries").
		Set("status", next.String()).
		Set("timeline", sq.Expr("timeline || ?::jsonb", entryRaw))

	builder, err = applyModify(builder, extra)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository advance status error: %w", err)
	}

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "status": expected.String()}).
		Suffix("RETURNING " + deliveryColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository advance status error: %w", err)
	}

	var deliveryDB DeliveryDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(scanTargets(&deliveryDB)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMissedUpdate(ctx, id)
		}
		return nil, fmt.Errorf("unexpected delivery repository advance status error: %w", err)
	}

	return ToDomain(&deliveryDB)
}

func (r *Repository) Update(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error) {
	builder := qb.
		Update("deliveries")

	builder, err := applyModify(builder, deliveryModify)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository update error: %w", err)
	}

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": deliveryModify.ID}).
		Suffix("RETURNING " + deliveryColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository update error: %w", err)
	}

	var deliveryDB DeliveryDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(scanTargets(&deliveryDB)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository update error: %w", err)
	}

	return ToDomain(&deliveryDB)
}

// applyModify translates the optional fields of a DeliveryModify into SET
// clauses. The actual stop times live inside the route document and are
// patched in place.
func applyModify(builder sq.UpdateBuilder, m entities.DeliveryModify) (sq.UpdateBuilder, error) {
	if m.Distributor != nil {
		if distributorID, ok := m.Distributor.ID(); ok {
			builder = builder.Set("distributor_id", distributorID)
		} else {
			builder = builder.Set("distributor_id", nil)
		}
	}
	if m.Driver != nil {
		driver, err := json.Marshal(m.Driver)
		if err != nil {
			return builder, fmt.Errorf("encode delivery driver: %w", err)
		}
		builder = builder.Set("driver", driver)
	}
	if m.Vehicle != nil {
		vehicle, err := json.Marshal(m.Vehicle)
		if err != nil {
			return builder, fmt.Errorf("encode delivery vehicle: %w", err)
		}
		builder = builder.Set("vehicle", vehicle)
	}
	if m.Status != nil {
		builder = builder.Set("status", m.Status.String())
	}
	if m.PickupActual != nil {
		builder = builder.Set("route", sq.Expr(
			"jsonb_set(route, '{pickup,actualTime}', to_jsonb(?::timestamptz))", *m.PickupActual,
		))
	}
	if m.DropoffActual != nil {
		builder = builder.Set("route", sq.Expr(
			"jsonb_set(route, '{delivery,actualTime}', to_jsonb(?::timestamptz))", *m.DropoffActual,
		))
	}
	if m.Proof != nil {
		proof, err := json.Marshal(m.Proof)
		if err != nil {
			return builder, fmt.Errorf("encode delivery proof: %w", err)
		}
		builder = builder.Set("proof", proof)
	}
	if m.CurrentLocation != nil {
		location, err := json.Marshal(m.CurrentLocation)
		if err != nil {
			return builder, fmt.Errorf("encode delivery location: %w", err)
		}
		builder = builder.Set("current_location", location)
	}
	return builder, nil
}

// UpdateLocation refreshes the live position and leaves a timeline note in
// one statement.
func (r *Repository) UpdateLocation(ctx context.Context, id string, location entities.GeoPoint, entry entities.TimelineEntry) (*entities.Delivery, error) {
	locationRaw, err := json.Marshal(location)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository update location error: %w", err)
	}

	entryRaw, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository update location error: %w", err)
	}

	query := `
		UPDATE deliveries
		SET current_location = $2,
			timeline = timeline || $3::jsonb,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + deliveryColumns

	var deliveryDB DeliveryDB
	err = r.querier.QueryRow(ctx, query, id, locationRaw, entryRaw).Scan(scanTargets(&deliveryDB)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository update location error: %w", err)
	}

	return ToDomain(&deliveryDB)
}

func (r *Repository) countDeliveries(ctx context.Context, conditions sq.And) (int64, error) {
	builder := qb.
		Select("COUNT(*)").
		From("deliveries")
	if len(conditions) > 0 {
		builder = builder.Where(conditions)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected delivery repository count error: %w", err)
	}

	var total int64
	err = r.querier.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("unexpected delivery repository count error: %w", err)
	}
	return total, nil
}

// classifyMissedUpdate separates "row gone" from "guard lost the race".
func (r *Repository) classifyMissedUpdate(ctx context.Context, id string) error {
	var exists bool
	err := r.querier.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM deliveries WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("unexpected delivery repository advance status error: %w", err)
	}
	if exists {
		return delivery.ErrConcurrentUpdate
	}
	return delivery.ErrDeliveryNotFound
}

func scanTargets(d *DeliveryDB) []interface{} {
	return []interface{}{
		&d.ID,
		&d.OrderID,
		&d.OrderNumber,
		&d.DistributorID,
		&d.Driver,
		&d.Vehicle,
		&d.Route,
		&d.Status,
		&d.Timeline,
		&d.Proof,
		&d.CurrentLocation,
		&d.CreatedAt,
		&d.UpdatedAt,
	}
}
