package notification_fanout

import (
	"context"

	"fulfillment/internal/pkg/eventbus"
	"fulfillment/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ConsumeEvent(ctx context.Context, event eventbus.Event) error
}
