package directory

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/gateway/http/transport"
	retrierconfig "fulfillment/pkg/retrier"
	"fulfillment/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "directory-service"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 500 * time.Millisecond
	maxElapsedTime  = 2 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// DirectoryGateway resolves user contact details. Lookups are best-effort:
// a failed or slow resolution degrades to a placeholder instead of an error.
type DirectoryGateway struct {
	client  httpDoer
	retrier retrier
	baseURL string
}

func New(client httpDoer, baseURL string) *DirectoryGateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     transport.IsRetryable,
	}

	return &DirectoryGateway{
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
		baseURL: baseURL,
	}
}

// GetContact never fails: an unresolvable user yields a placeholder contact
// with no email.
func (g *DirectoryGateway) GetContact(ctx context.Context, userID string) entities.Contact {
	endpoint := g.baseURL + "/api/users/" + url.PathEscape(userID) + "/contact"

	var resp struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}

	err := g.executeWithMetrics(ctx, "GetContact", func(ctx context.Context) error {
		return transport.DoJSON(ctx, g.client, http.MethodGet, endpoint, nil, &resp)
	})
	if err != nil {
		return entities.Contact{Name: entities.PlaceholderName}
	}

	if resp.Name == "" {
		resp.Name = entities.PlaceholderName
	}

	return entities.Contact{
		Name:  resp.Name,
		Email: resp.Email,
		Phone: resp.Phone,
	}
}

func (g *DirectoryGateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	transport.ObserveCall(serviceName, method, attempt, start, err)

	return err
}
