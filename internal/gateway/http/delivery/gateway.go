package delivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/gateway/http/transport"
	retrierconfig "fulfillment/pkg/retrier"
	"fulfillment/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "delivery-service"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 10 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

var (
	ErrDeliveryNotFound      = errors.New("delivery not found")
	ErrOrderAlreadyScheduled = errors.New("order already has a delivery")
)

type DeliveryGateway struct {
	client  httpDoer
	retrier retrier
	baseURL string
}

func New(client httpDoer, baseURL string) *DeliveryGateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     transport.IsRetryable,
	}

	return &DeliveryGateway{
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
		baseURL: baseURL,
	}
}

// Create schedules a delivery for the order. Duplicate order ids surface as
// ErrOrderAlreadyScheduled, which callers treat as success.
func (g *DeliveryGateway) Create(ctx context.Context, order entities.Order) (*entities.Delivery, error) {
	endpoint := g.baseURL + "/api/deliveries"

	body := map[string]any{
		"orderId":         order.ID,
		"orderNumber":     order.Number,
		"customerId":      order.CustomerID,
		"farmerId":        order.FarmerID,
		"farmerName":      order.FarmerName,
		"deliveryAddress": order.DeliveryAddress,
	}

	var resp deliveryEnvelope
	err := g.executeWithMetrics(ctx, "Create", func(ctx context.Context) error {
		return transport.DoJSON(ctx, g.client, http.MethodPost, endpoint, body, &resp)
	})
	if err != nil {
		if transport.IsStatus(err, http.StatusConflict) {
			return nil, ErrOrderAlreadyScheduled
		}
		return nil, fmt.Errorf("gateway delivery, create for order %s: %w", order.ID, err)
	}

	return toDomain(resp.Delivery), nil
}

func (g *DeliveryGateway) GetByOrderID(ctx context.Context, orderID string) (*entities.Delivery, error) {
	endpoint := g.baseURL + "/api/deliveries?orderId=" + url.QueryEscape(orderID)

	var resp struct {
		Success    bool          `json:"success"`
		Deliveries []deliveryDTO `json:"deliveries"`
	}
	err := g.executeWithMetrics(ctx, "GetByOrderID", func(ctx context.Context) error {
		return transport.DoJSON(ctx, g.client, http.MethodGet, endpoint, nil, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway delivery, get by order %s: %w", orderID, err)
	}

	if len(resp.Deliveries) == 0 {
		return nil, ErrDeliveryNotFound
	}

	return toDomain(&resp.Deliveries[0]), nil
}

func (g *DeliveryGateway) UpdateStatus(ctx context.Context, deliveryID string, status entities.DeliveryStatusType, note string) (*entities.Delivery, error) {
	endpoint := g.baseURL + "/api/deliveries/" + url.PathEscape(deliveryID) + "/status"

	body := map[string]string{
		"status": status.String(),
	}
	if note != "" {
		body["note"] = note
	}

	var resp deliveryEnvelope
	err := g.executeWithMetrics(ctx, "UpdateStatus", func(ctx context.Context) error {
		return transport.DoJSON(ctx, g.client, http.MethodPatch, endpoint, body, &resp)
	})
	if err != nil {
		if transport.IsStatus(err, http.StatusNotFound) {
			return nil, ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("gateway delivery, update status %s -> %s: %w", deliveryID, status, err)
	}

	return toDomain(resp.Delivery), nil
}

func (g *DeliveryGateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	transport.ObserveCall(serviceName, method, attempt, start, err)

	return err
}
