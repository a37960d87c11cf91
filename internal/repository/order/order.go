package order

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
	"fulfillment/internal/service/order"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const orderColumns = `id, number, customer_id, farmer_id, farmer_name, distributor_id,
		items, total_amount, delivery_address, notes, status, timeline,
		rating_eligible, actual_delivery_time, created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, orderEntity entities.Order) (*entities.Order, error) {
	if orderEntity.ID == "" {
		orderEntity.ID = uuid.NewString()
	}

	orderDB, err := FromDomain(&orderEntity)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	query := `
		INSERT INTO orders (id, number, customer_id, farmer_id, farmer_name, distributor_id,
			items, total_amount, delivery_address, notes, status, timeline, rating_eligible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + orderColumns

	var created OrderDB
	err = r.querier.QueryRow(
		ctx,
		query,
		orderDB.ID,
		orderDB.Number,
		orderDB.CustomerID,
		orderDB.FarmerID,
		orderDB.FarmerName,
		orderDB.DistributorID,
		orderDB.Items,
		orderDB.TotalAmount,
		orderDB.DeliveryAddress,
		orderDB.Notes,
		orderDB.Status,
		orderDB.Timeline,
		orderDB.RatingEligible,
	).Scan(scanTargets(&created)...)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, order.ErrDuplicateNumber
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToDomain(&created)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1`

	var orderDB OrderDB
	err := r.querier.QueryRow(ctx, query, id).Scan(scanTargets(&orderDB)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	return ToDomain(&orderDB)
}

func (r *Repository) List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, int64, error) {
	conditions := sq.And{}
	if filter.CustomerID != "" {
		conditions = append(conditions, sq.Eq{"customer_id": filter.CustomerID})
	}
	if filter.FarmerID != "" {
		conditions = append(conditions, sq.Eq{"farmer_id": filter.FarmerID})
	}
	if filter.Status != nil {
		conditions = append(conditions, sq.Eq{"status": filter.Status.String()})
	}

	total, err := r.countOrders(ctx, conditions)
	if err != nil {
		return nil, 0, err
	}

	builder := qb.
		Select(orderColumns).
		From("orders").
		OrderBy("created_at DESC")
	if len(conditions) > 0 {
		builder = builder.Where(conditions)
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("unexpected order repository list error: %w", err)
	}
	defer rows.Close()

	ordersDB := make([]OrderDB, 0, 8)
	for rows.Next() {
		var orderDB OrderDB
		err := rows.Scan(scanTargets(&orderDB)...)
		if err != nil {
			return nil, 0, fmt.Errorf("unexpected order repository list error: %w", err)
		}
		ordersDB = append(ordersDB, orderDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, 0, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	orders, err := ToDomainList(ordersDB)
	if err != nil {
		return nil, 0, fmt.Errorf("unexpected order repository list error: %w", err)
	}
	return orders, total, nil
}

// AdvanceStatus moves the order from expected to next in a single guarded
// statement, appending the timeline entry atomically. The delivered status
// also flips rating eligibility and stamps the actual delivery time. A row
// that no longer carries the expected status is left untouched.
func (r *Repository) AdvanceStatus(ctx context.Context, id string, expected, next entities.OrderStatusType, entry entities.TimelineEntry) (*entities.Order, error) {
	entryRaw, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository advance status error: %w", err)
	}

	query := `
		UPDATE orders
		SET status = $3,
			timeline = timeline || $4::jsonb,
			rating_eligible = CASE WHEN $3 = 'delivered' THEN TRUE ELSE rating_eligible END,
			actual_delivery_time = CASE WHEN $3 = 'delivered' THEN $5 ELSE actual_delivery_time END,
			updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + orderColumns

	var orderDB OrderDB
	err = r.querier.QueryRow(
		ctx,
		query,
		id,
		expected.String(),
		next.String(),
		entryRaw,
		entry.Timestamp,
	).Scan(scanTargets(&orderDB)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMissedUpdate(ctx, id)
		}
		return nil, fmt.Errorf("unexpected order repository advance status error: %w", err)
	}

	return ToDomain(&orderDB)
}

func (r *Repository) Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error) {
	builder := qb.
		Update("orders")

	// optional fields
	if orderModify.Distributor != nil {
		if distributorID, ok := orderModify.Distributor.ID(); ok {
			builder = builder.Set("distributor_id", distributorID)
		} else {
			builder = builder.Set("distributor_id", nil)
		}
	}
	if orderModify.Status != nil {
		builder = builder.Set("status", orderModify.Status.String())
	}
	if orderModify.RatingEligible != nil {
		builder = builder.Set("rating_eligible", *orderModify.RatingEligible)
	}
	if orderModify.ActualDeliveryTime != nil {
		builder = builder.Set("actual_delivery_time", *orderModify.ActualDeliveryTime)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": orderModify.ID}).
		Suffix("RETURNING " + orderColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	var orderDB OrderDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(scanTargets(&orderDB)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	return ToDomain(&orderDB)
}

func (r *Repository) countOrders(ctx context.Context, conditions sq.And) (int64, error) {
	builder := qb.
		Select("COUNT(*)").
		From("orders")
	if len(conditions) > 0 {
		builder = builder.Where(conditions)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected order repository count error: %w", err)
	}

	var total int64
	err = r.querier.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("unexpected order repository count error: %w", err)
	}
	return total, nil
}

// classifyMissedUpdate separates "row gone" from "guard lost the race".
func (r *Repository) classifyMissedUpdate(ctx context.Context, id string) error {
	var exists bool
	err := r.querier.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("unexpected order repository advance status error: %w", err)
	}
	if exists {
		return order.ErrConcurrentUpdate
	}
	return order.ErrOrderNotFound
}

func scanTargets(o *OrderDB) []interface{} {
	return []interface{}{
		&o.ID,
		&o.Number,
		&o.CustomerID,
		&o.FarmerID,
		&o.FarmerName,
		&o.DistributorID,
		&o.Items,
		&o.TotalAmount,
		&o.DeliveryAddress,
		&o.Notes,
		&o.Status,
		&o.Timeline,
		&o.RatingEligible,
		&o.ActualDeliveryTime,
		&o.CreatedAt,
		&o.UpdatedAt,
	}
}
