//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=ratings_post_test
package ratings_post

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/internal/handlers/rest/dto"
	"fulfillment/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Create(ctx context.Context, rating entities.Rating) (*entities.Rating, error)
}

type RatingCreate struct {
	OrderID string `json:"orderId"`
	RaterID string `json:"raterId"`
	RateeID string `json:"rateeId"`
	Type    string `json:"type"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

type RatingCreateResponse struct {
	Success bool       `json:"success"`
	Rating  dto.Rating `json:"rating"`
}
