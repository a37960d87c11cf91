package rating

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fulfillment/internal/entities"
	"fulfillment/internal/repository"
	"fulfillment/internal/service/rating"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, ratingEntity entities.Rating) (*entities.Rating, error) {
	if ratingEntity.ID == "" {
		ratingEntity.ID = uuid.NewString()
	}

	query := `
		INSERT INTO ratings (id, order_id, rater_id, ratee_id, type, score, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, order_id, rater_id, ratee_id, type, score, comment, created_at`

	var ratingDB RatingDB
	err := r.querier.QueryRow(
		ctx,
		query,
		ratingEntity.ID,
		ratingEntity.OrderID,
		ratingEntity.RaterID,
		ratingEntity.RateeID,
		ratingEntity.Type.String(),
		ratingEntity.Score,
		ratingEntity.Comment,
	).Scan(
		&ratingDB.ID,
		&ratingDB.OrderID,
		&ratingDB.RaterID,
		&ratingDB.RateeID,
		&ratingDB.Type,
		&ratingDB.Score,
		&ratingDB.Comment,
		&ratingDB.CreatedAt,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, rating.ErrDuplicateRating
		}
		return nil, fmt.Errorf("unexpected rating repository create error: %w", err)
	}

	return ToDomain(&ratingDB), nil
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID string) ([]entities.Rating, error) {
	query := `
		SELECT id, order_id, rater_id, ratee_id, type, score, comment, created_at
		FROM ratings
		WHERE order_id = $1
		ORDER BY created_at`

	rows, err := r.querier.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("unexpected rating repository getbyorderid error: %w", err)
	}
	defer rows.Close()

	ratingsDB := make([]RatingDB, 0, 4)
	for rows.Next() {
		var ratingDB RatingDB
		err := rows.Scan(
			&ratingDB.ID,
			&ratingDB.OrderID,
			&ratingDB.RaterID,
			&ratingDB.RateeID,
			&ratingDB.Type,
			&ratingDB.Score,
			&ratingDB.Comment,
			&ratingDB.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected rating repository getbyorderid error: %w", err)
		}
		ratingsDB = append(ratingsDB, ratingDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected rating repository getbyorderid error: %w", err)
	}

	return ToDomainList(ratingsDB), nil
}

// AverageForRatee returns the mean score of one ratee across a rating type.
func (r *Repository) AverageForRatee(ctx context.Context, rateeID string, ratingType entities.RatingType) (float64, int64, error) {
	query := `
		SELECT COALESCE(AVG(score), 0), COUNT(*)
		FROM ratings
		WHERE ratee_id = $1 AND type = $2`

	var average float64
	var count int64
	err := r.querier.QueryRow(ctx, query, rateeID, ratingType.String()).Scan(&average, &count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("unexpected rating repository average error: %w", err)
	}

	return average, count, nil
}
