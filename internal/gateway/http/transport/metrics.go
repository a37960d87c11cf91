package transport

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GatewayRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_retries_total",
			Help: "Total number of gateway retry attempts",
		},
		[]string{"service", "method", "status_code"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Duration of gateway requests including retries",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"service", "method", "status_code"},
	)
)

// ObserveCall records duration and retry metrics around a retried gateway call.
func ObserveCall(service, method string, attempts uint64, start time.Time, err error) {
	code := statusCode(err)
	GatewayRequestDuration.WithLabelValues(service, method, code).Observe(time.Since(start).Seconds())

	if attempts > 1 {
		GatewayRetriesTotal.WithLabelValues(service, method, code).Inc()
	}
}

func statusCode(err error) string {
	if err == nil {
		return strconv.Itoa(http.StatusOK)
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return strconv.Itoa(statusErr.Code)
	}
	return "error"
}
