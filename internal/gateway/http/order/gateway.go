package order

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
	serviceName = "order-service"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 10 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

var ErrOrderNotFound = errors.New("order not found")

type OrderGateway struct {
	client  httpDoer
	retrier retrier
	baseURL string
}

func New(client httpDoer, baseURL string) *OrderGateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     transport.IsRetryable,
	}

	return &OrderGateway{
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
		baseURL: baseURL,
	}
}

func (g *OrderGateway) GetOrderByID(ctx context.Context, orderID string) (*entities.Order, error) {
	endpoint := g.baseURL + "/api/orders/" + url.PathEscape(orderID)

	var resp orderEnvelope
	err := g.executeWithMetrics(ctx, "GetOrderByID", func(ctx context.Context) error {
		return transport.DoJSON(ctx, g.client, http.MethodGet, endpoint, nil, &resp)
	})
	if err != nil {
		if transport.IsStatus(err, http.StatusNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("gateway order, get order %s: %w", orderID, err)
	}

	if resp.Order == nil {
		return nil, ErrOrderNotFound
	}

	return toDomain(resp.Order), nil
}

// UpdateStatus asks the order service to advance the order. The order service
// runs its own transition guard, so a lost race surfaces as 409.
func (g *OrderGateway) UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatusType, note string) (*entities.Order, error) {
	endpoint := g.baseURL + "/api/orders/" + url.PathEscape(orderID) + "/status"

	body := map[string]string{
		"status": status.String(),
	}
	if note != "" {
		body["note"] = note
	}

	var resp orderEnvelope
	err := g.executeWithMetrics(ctx, "UpdateStatus", func(ctx context.Context) error {
		return transport.DoJSON(ctx, g.client, http.MethodPatch, endpoint, body, &resp)
	})
	if err != nil {
		if transport.IsStatus(err, http.StatusNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("gateway order, update status %s -> %s: %w", orderID, status, err)
	}

	return toDomain(resp.Order), nil
}

func (g *OrderGateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	transport.ObserveCall(serviceName, method, attempt, start, err)

	return err
}
