package ratings_get

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

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
	orderID := mux.Vars(r)["id"]

	ratingEntities, err := h.service.ListByOrder(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, rating.ErrMissingRequiredFields):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	ratingDTOs := make([]dto.Rating, 0, len(ratingEntities))
	for i := range ratingEntities {
		ratingDTOs = append(ratingDTOs, dto.FromRating(&ratingEntities[i]))
	}

	response := RatingListResponse{
		Success: true,
		Ratings: ratingDTOs,
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
