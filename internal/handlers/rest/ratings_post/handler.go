package ratings_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"fulfillment/internal/entities"
	"fulfillment/internal/handlers/rest/dto"
	"fulfillment/internal/service/rating"
	"fulfillment/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var ratingCreateDTO RatingCreate
	err := json.NewDecoder(r.Body).Decode(&ratingCreateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ratingEntity := entities.Rating{
		OrderID: ratingCreateDTO.OrderID,
		RaterID: ratingCreateDTO.RaterID,
		RateeID: ratingCreateDTO.RateeID,
		Type:    entities.RatingType(ratingCreateDTO.Type),
		Score:   ratingCreateDTO.Score,
		Comment: ratingCreateDTO.Comment,
	}

	created, err := h.service.Create(r.Context(), ratingEntity)
	if err != nil {
		switch {
		case errors.Is(err, rating.ErrMissingRequiredFields),
			errors.Is(err, rating.ErrInvalidRatingType),
			errors.Is(err, rating.ErrInvalidScore):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, rating.ErrOrderNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, rating.ErrOrderNotEligible),
			errors.Is(err, rating.ErrDuplicateRating):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := RatingCreateResponse{
		Success: true,
		Rating:  dto.FromRating(created),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
