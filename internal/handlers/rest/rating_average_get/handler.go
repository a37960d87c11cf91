package rating_average_get

import (
	"encoding/json"
	"errors"
	"net/http"

	"fulfillment/internal/entities"
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
	query := r.URL.Query()
	rateeID := query.Get("rateeId")
	ratingType := entities.RatingType(query.Get("type"))

	average, count, err := h.service.AverageForRatee(r.Context(), rateeID, ratingType)
	if err != nil {
		switch {
		case errors.Is(err, rating.ErrMissingRequiredFields),
			errors.Is(err, rating.ErrInvalidRatingType):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := RatingAverageResponse{
		Success: true,
		RateeID: rateeID,
		Type:    ratingType.String(),
		Average: average,
		Count:   count,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
