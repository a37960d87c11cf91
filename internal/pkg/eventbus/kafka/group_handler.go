package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"

	"fulfillment/internal/pkg/eventbus"
	"fulfillment/pkg/logger"
)

// GroupHandler adapts an eventbus.Handler to a sarama consumer group. Every
// message on the exchange topic is decoded into an event; messages whose
// routing key does not match the pattern are acknowledged and skipped.
// Delivery is at-least-once: handler errors are logged and the message is
// still marked consumed (no dead-lettering).
type GroupHandler struct {
	log               handlerLogger
	pattern           string
	handler           eventbus.Handler
	processingTimeout time.Duration
}

func NewGroupHandler(log handlerLogger, pattern string, handler eventbus.Handler, timeout time.Duration) *GroupHandler {
	return &GroupHandler{
		log:               log.With(logger.NewField("pattern", pattern)),
		pattern:           pattern,
		handler:           handler,
		processingTimeout: timeout,
	}
}

func (h *GroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *GroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *GroupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing handles a single Kafka message. It returns true when
// ConsumeClaim must be interrupted (context cancellation, so the message is
// redelivered) and false to continue with the next message.
func (h *GroupHandler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.processingTimeout)
	defer cancel()

	event, err := decodeEvent(message)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	if !eventbus.MatchTopic(h.pattern, event.Topic) {
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("topic", event.Topic),
		logger.NewField("offset", message.Offset),
	)

	err = h.safeHandle(ctx, event)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			msgLog.With(
				logger.NewField("error", err),
			).Warn("handler context cancelled, message will be reprocessed")
			return true
		}

		msgLog.With(
			logger.NewField("error", err),
		).Warn("handler failed, message considered consumed")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("event processed")
	sess.MarkMessage(message, "")
	return false
}

// safeHandle keeps a panicking handler from crashing the subscriber process.
func (h *GroupHandler) safeHandle(ctx context.Context, event eventbus.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.log.With(
				logger.NewField("topic", event.Topic),
				logger.NewField("recover", r),
			).Error("handler panic")
			err = nil
		}
	}()

	return h.handler(ctx, event)
}

func decodeEvent(message *sarama.ConsumerMessage) (eventbus.Event, error) {
	var payload map[string]any
	if err := json.Unmarshal(message.Value, &payload); err != nil {
		return eventbus.Event{}, err
	}

	topic, _ := payload["type"].(string)
	if topic == "" {
		// The routing key carries the same tag; payloads missing it entirely
		// are handed over untagged for the consumer to decide.
		topic = string(message.Key)
	}

	timestamp := message.Timestamp
	if raw, ok := payload["timestamp"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			timestamp = parsed
		}
	}

	return eventbus.Event{
		Topic:     topic,
		Payload:   payload,
		Timestamp: timestamp,
	}, nil
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
