// Package driver_day_reset zeroes the per-day delivery counters that the fleet
// auto-release keeps incrementing. Running it on an interval rather than at
// midnight keeps the task idempotent: resetting an already-zero counter
// touches no rows.
package driver_day_reset

import (
	"context"
	"time"

	"fulfillment/pkg/logger"
)

type Service interface {
	ResetDayCounters(ctx context.Context) (int64, error)
}

type DriverDayReset struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func New(log logger.Logger, service Service, interval time.Duration) *DriverDayReset {
	return &DriverDayReset{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (d *DriverDayReset) TTL() time.Duration {
	return d.interval
}

func (d *DriverDayReset) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, d.interval)
	defer cancel()

	rowsAffected, err := d.service.ResetDayCounters(ctxWithTimeout)

	if rowsAffected > 0 {
		d.log.With(
			logger.NewField("drivers_reset", rowsAffected),
		).Info("driver day counter reset")
	}

	return err
}

func (d *DriverDayReset) Info() string {
	return "driver day counter reset"
}
