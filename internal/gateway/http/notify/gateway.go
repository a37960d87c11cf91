package notify

import (
	"context"
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
	serviceName = "notify-service"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 500 * time.Millisecond
	maxElapsedTime  = 2 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// NotifyGateway pushes in-app notifications. All calls are best-effort from
// the caller's perspective; a failure never blocks the triggering transition.
type NotifyGateway struct {
	client  httpDoer
	retrier retrier
	baseURL string
}

func New(client httpDoer, baseURL string) *NotifyGateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     transport.IsRetryable,
	}

	return &NotifyGateway{
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
		baseURL: baseURL,
	}
}

func (g *NotifyGateway) Send(ctx context.Context, notification entities.Notification) error {
	var endpoint string
	switch notification.Channel {
	case entities.NotifyRole:
		endpoint = g.baseURL + "/notify/role/" + url.PathEscape(notification.Recipient)
	default:
		endpoint = g.baseURL + "/notify/user/" + url.PathEscape(notification.Recipient)
	}

	body := map[string]any{
		"type":    notification.Type,
		"title":   notification.Title,
		"message": notification.Message,
	}
	if len(notification.Data) > 0 {
		body["data"] = notification.Data
	}

	err := g.executeWithMetrics(ctx, "Send", func(ctx context.Context) error {
		return transport.DoJSON(ctx, g.client, http.MethodPost, endpoint, body, nil)
	})
	if err != nil {
		return fmt.Errorf("gateway notify, send %s to %s %s: %w",
			notification.Type, notification.Channel, notification.Recipient, err)
	}

	return nil
}

func (g *NotifyGateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	transport.ObserveCall(serviceName, method, attempt, start, err)

	return err
}
