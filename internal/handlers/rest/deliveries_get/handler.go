package deliveries_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"fulfillment/internal/entities"
	"fulfillment/internal/handlers/rest/dto"
	"fulfillment/pkg/logger"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

var errInvalidQuery = errors.New("invalid query parameter")

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
	filter, err := parseFilter(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	deliveryEntities, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	response := DeliveryListResponse{
		Success:    true,
		Deliveries: dto.FromDeliveryList(deliveryEntities),
		Pagination: dto.Pagination{
			Total:  total,
			Limit:  filter.Limit,
			Offset: filter.Offset,
		},
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

func parseFilter(r *http.Request) (entities.DeliveryFilter, error) {
	query := r.URL.Query()

	filter := entities.DeliveryFilter{
		OrderID:       query.Get("orderId"),
		DistributorID: query.Get("distributorId"),
		Limit:         defaultLimit,
	}

	if statusStr := query.Get("status"); statusStr != "" {
		status := entities.DeliveryStatusType(statusStr)
		if !status.Valid() {
			return entities.DeliveryFilter{}, errInvalidQuery
		}
		filter.Status = &status
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.ParseUint(limitStr, 10, 64)
		if err != nil || limit == 0 {
			return entities.DeliveryFilter{}, errInvalidQuery
		}
		filter.Limit = min(limit, maxLimit)
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		offset, err := strconv.ParseUint(offsetStr, 10, 64)
		if err != nil {
			return entities.DeliveryFilter{}, errInvalidQuery
		}
		filter.Offset = offset
	}

	return filter, nil
}
