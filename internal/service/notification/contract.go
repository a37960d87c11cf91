//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notification_test
package notification

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
)

type PushGateway interface {
	Send(ctx context.Context, notification entities.Notification) error
}

type EmailSender interface {
	Send(ctx context.Context, message entities.EmailMessage) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
