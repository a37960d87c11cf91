package delivery_status_patch

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"fulfillment/internal/entities"
	"fulfillment/internal/handlers/rest/dto"
	"fulfillment/internal/service/delivery"
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
	id := mux.Vars(r)["id"]

	var statusUpdateDTO DeliveryStatusUpdate
	err := json.NewDecoder(r.Body).Decode(&statusUpdateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	update := delivery.StatusUpdate{
		Status: entities.DeliveryStatusType(statusUpdateDTO.Status),
		Note:   statusUpdateDTO.Note,
	}
	if statusUpdateDTO.DistributorID != "" {
		distributor := entities.AssignedDistributor(statusUpdateDTO.DistributorID)
		update.Distributor = &distributor
	}
	if statusUpdateDTO.Driver != nil {
		driver := entities.DriverInfo(*statusUpdateDTO.Driver)
		update.Driver = &driver
	}
	if statusUpdateDTO.Vehicle != nil {
		vehicle := entities.VehicleInfo(*statusUpdateDTO.Vehicle)
		update.Vehicle = &vehicle
	}

	deliveryEntity, err := h.service.UpdateStatus(r.Context(), id, update)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidDeliveryID),
			errors.Is(err, delivery.ErrInvalidStatus):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, delivery.ErrDeliveryNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, delivery.ErrStatusConflict),
			errors.Is(err, delivery.ErrConcurrentUpdate):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := DeliveryStatusUpdateResponse{
		Success:  true,
		Delivery: dto.FromDelivery(deliveryEntity),
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
