package orders_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"fulfillment/internal/entities"
	"fulfillment/internal/handlers/rest/dto"
	"fulfillment/internal/service/order"
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
	var orderCreateDTO OrderCreate
	err := json.NewDecoder(r.Body).Decode(&orderCreateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	items := make([]entities.NewOrderItem, 0, len(orderCreateDTO.Items))
	for _, item := range orderCreateDTO.Items {
		items = append(items, entities.NewOrderItem(item))
	}
	checkoutEntity := entities.Checkout{
		CustomerID:      orderCreateDTO.CustomerID,
		Items:           items,
		DeliveryAddress: orderCreateDTO.DeliveryAddress,
		Notes:           orderCreateDTO.Notes,
	}

	orderEntities, err := h.service.CreateOrders(r.Context(), checkoutEntity)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrMissingRequiredFields),
			errors.Is(err, order.ErrEmptyItems),
			errors.Is(err, order.ErrInvalidItem):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, order.ErrDuplicateNumber):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := OrderCreateResponse{
		Success: true,
		Orders:  dto.FromOrderList(orderEntities),
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
