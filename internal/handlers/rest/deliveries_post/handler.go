package deliveries_post

import (
	"encoding/json"
	"errors"
	"net/http"

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
	var deliveryCreateDTO DeliveryCreate
	err := json.NewDecoder(r.Body).Decode(&deliveryCreateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	request := entities.NewDelivery{
		OrderID:         deliveryCreateDTO.OrderID,
		OrderNumber:     deliveryCreateDTO.OrderNumber,
		CustomerID:      deliveryCreateDTO.CustomerID,
		FarmerID:        deliveryCreateDTO.FarmerID,
		FarmerName:      deliveryCreateDTO.FarmerName,
		DeliveryAddress: deliveryCreateDTO.DeliveryAddress,
	}

	deliveryEntity, err := h.service.Create(r.Context(), request)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrMissingRequiredFields):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, delivery.ErrOrderAlreadyScheduled):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := DeliveryCreateResponse{
		Success:  true,
		Delivery: dto.FromDelivery(deliveryEntity),
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
