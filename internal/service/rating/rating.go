package rating

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/eventbus"
	"fulfillment/internal/service/order"
	"fulfillment/pkg/logger"
)

type Rating struct {
	log        serviceLogger
	repository Repository
	orders     OrderService
	publisher  EventPublisher
}

func New(log serviceLogger, repository Repository, orders OrderService, publisher EventPublisher) *Rating {
	return &Rating{
		log:        log,
		repository: repository,
		orders:     orders,
		publisher:  publisher,
	}
}

// Create accepts a rating only for delivered orders; uniqueness on
// (order, rater, type) is enforced by the storage layer.
func (r *Rating) Create(ctx context.Context, ratingEntity entities.Rating) (*entities.Rating, error) {
	if err := validateRating(ratingEntity); err != nil {
		return nil, err
	}

	orderEntity, err := r.orders.GetByID(ctx, ratingEntity.OrderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("lookup order %s: %w", ratingEntity.OrderID, err)
	}

	if !orderEntity.RatingEligible {
		return nil, ErrOrderNotEligible
	}

	created, err := r.repository.Create(ctx, ratingEntity)
	if err != nil {
		return nil, err
	}

	err = r.publisher.Publish(ctx, eventbus.TopicRatingCreated, map[string]any{
		"ratingId": created.ID,
		"orderId":  created.OrderID,
		"rateeId":  created.RateeID,
		"type":     created.Type.String(),
		"score":    created.Score,
	})
	if err != nil {
		r.log.With(
			logger.NewField("ratingId", created.ID),
			logger.NewField("error", err),
		).Warn("failed to publish rating event")
	}

	return created, nil
}

func (r *Rating) ListByOrder(ctx context.Context, orderID string) ([]entities.Rating, error) {
	if !isValidID(orderID) {
		return nil, ErrMissingRequiredFields
	}
	return r.repository.GetByOrderID(ctx, orderID)
}

// AverageForRatee is the aggregate consumed by profile pages.
func (r *Rating) AverageForRatee(ctx context.Context, rateeID string, ratingType entities.RatingType) (float64, int64, error) {
	if !isValidID(rateeID) {
		return 0, 0, ErrMissingRequiredFields
	}
	if !ratingType.Valid() {
		return 0, 0, ErrInvalidRatingType
	}
	return r.repository.AverageForRatee(ctx, rateeID, ratingType)
}
