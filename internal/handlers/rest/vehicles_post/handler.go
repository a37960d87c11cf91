package vehicles_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"fulfillment/internal/entities"
	"fulfillment/internal/handlers/rest/dto"
	"fulfillment/internal/service/fleet"
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
	var vehicleCreateDTO VehicleCreate
	err := json.NewDecoder(r.Body).Decode(&vehicleCreateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	vehicleEntity := entities.Vehicle{
		DistributorID: vehicleCreateDTO.DistributorID,
		Plate:         vehicleCreateDTO.Plate,
		Type:          vehicleCreateDTO.Type,
	}

	created, err := h.service.CreateVehicle(r.Context(), vehicleEntity)
	if err != nil {
		switch {
		case errors.Is(err, fleet.ErrMissingRequiredFields):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, fleet.ErrConflict):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := VehicleCreateResponse{
		Success: true,
		Vehicle: dto.FromVehicle(created),
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
