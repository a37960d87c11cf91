package drivers_get

import (
	"encoding/json"
	"net/http"

	"fulfillment/internal/handlers/rest/dto"
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
	distributorID := r.URL.Query().Get("distributorId")

	driverEntities, err := h.service.ListDrivers(r.Context(), distributorID)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	response := DriverListResponse{
		Success: true,
		Drivers: dto.FromDriverList(driverEntities),
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
