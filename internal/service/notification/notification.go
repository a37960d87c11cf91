package notification

import (
	"context"
	"fmt"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/eventbus"
	"fulfillment/internal/pkg/sideeffect"
	"fulfillment/pkg/logger"
)

const (
	effectPush  = "notification.push"
	effectEmail = "notification.email"
)

// emailEligible is the fixed set of event types that may additionally go out
// as email, provided the payload already carries an address.
var emailEligible = map[string]struct{}{
	eventbus.TopicOrderCreated:          {},
	eventbus.TopicOrderStatusUpdated:    {},
	eventbus.TopicDeliveryStatusUpdated: {},
	eventbus.TopicInspectionScheduled:   {},
}

// Engine fans one domain event out into zero or more push notifications and,
// for eligible event types, an email sibling. Push and email are independent
// fire-and-forget channels: neither blocks nor fails the other, and a fully
// failed fan-out still consumes the event.
type Engine struct {
	log      serviceLogger
	push     PushGateway
	email    EmailSender
	recorder sideeffect.Recorder
}

func New(log serviceLogger, push PushGateway, email EmailSender, recorder sideeffect.Recorder) *Engine {
	return &Engine{
		log:      log,
		push:     push,
		email:    email,
		recorder: recorder,
	}
}

// ConsumeEvent routes by the event's explicit type tag. Events without a tag
// are dropped with a warning; inferring the type from payload shape is
// deliberately not supported.
func (e *Engine) ConsumeEvent(ctx context.Context, event eventbus.Event) error {
	if event.Topic == "" {
		e.log.Warn("dropping untagged event")
		return nil
	}

	notifications := e.route(event)
	if len(notifications) == 0 {
		e.log.With(
			logger.NewField("topic", event.Topic),
		).Info("event produced no notifications")
	}

	for _, notification := range notifications {
		e.sendPush(ctx, notification)
	}

	e.maybeEmail(ctx, event)

	return nil
}

// route maps one event to its recipients. Unknown topics fan out to nobody.
func (e *Engine) route(event eventbus.Event) []entities.Notification {
	payload := event.Payload
	orderNumber := stringField(payload, "orderNumber")

	var triples []entities.Notification

	switch event.Topic {
	case eventbus.TopicOrderCreated:
		triples = []entities.Notification{
			user(payload, "farmerId", "New order", fmt.Sprintf("You received order %s", orderNumber)),
			user(payload, "customerId", "Order placed", fmt.Sprintf("Order %s was placed", orderNumber)),
		}

	case eventbus.TopicOrderStatusUpdated:
		message := fmt.Sprintf("Order %s is now %s", orderNumber, stringField(payload, "newStatus"))
		triples = []entities.Notification{
			user(payload, "customerId", "Order update", message),
			user(payload, "farmerId", "Order update", message),
		}

	case eventbus.TopicOrderCancelled:
		message := fmt.Sprintf("Order %s was cancelled", orderNumber)
		triples = []entities.Notification{
			user(payload, "customerId", "Order cancelled", message),
			user(payload, "farmerId", "Order cancelled", message),
		}

	case eventbus.TopicDeliveryCreated:
		triples = []entities.Notification{
			role("distributor", "New delivery", fmt.Sprintf("Delivery scheduled for order %s", orderNumber)),
		}

	case eventbus.TopicDeliveryStatusUpdated:
		message := fmt.Sprintf("Delivery for order %s is now %s", orderNumber, stringField(payload, "newStatus"))
		triples = []entities.Notification{
			user(payload, "customerId", "Delivery update", message),
			role("distributor", "Delivery update", message),
		}

	case eventbus.TopicDeliveryCompleted:
		message := fmt.Sprintf("Delivery for order %s is complete", orderNumber)
		triples = []entities.Notification{
			user(payload, "customerId", "Delivery complete", message),
			user(payload, "farmerId", "Delivery complete", message),
		}

	case eventbus.TopicRatingCreated:
		triples = []entities.Notification{
			user(payload, "rateeId", "New rating", "You received a new rating"),
		}

	case eventbus.TopicInspectionScheduled:
		triples = []entities.Notification{
			user(payload, "farmerId", "Inspection scheduled", stringField(payload, "message")),
			role("inspector", "Inspection scheduled", stringField(payload, "message")),
		}
	}

	notifications := make([]entities.Notification, 0, len(triples))
	for _, notification := range triples {
		if notification.Recipient == "" {
			continue
		}
		notification.Type = event.Topic
		notification.Data = payload
		notifications = append(notifications, notification)
	}
	return notifications
}

func (e *Engine) sendPush(ctx context.Context, notification entities.Notification) {
	err := e.push.Send(ctx, notification)
	if err != nil {
		e.recorder.Record(effectPush, sideeffect.OutcomeFailed)
		e.log.With(
			logger.NewField("channel", notification.Channel),
			logger.NewField("recipient", notification.Recipient),
			logger.NewField("error", err),
		).Warn("push notification failed")
		return
	}
	e.recorder.Record(effectPush, sideeffect.OutcomeOK)
}

// maybeEmail sends the email sibling for eligible event types. The engine
// never resolves addresses itself; no address in the payload means skip.
func (e *Engine) maybeEmail(ctx context.Context, event eventbus.Event) {
	if _, ok := emailEligible[event.Topic]; !ok {
		return
	}

	address := stringField(event.Payload, "email")
	if address == "" {
		e.recorder.Record(effectEmail, sideeffect.OutcomeSkipped)
		return
	}

	message := entities.EmailMessage{
		To:      address,
		Subject: fmt.Sprintf("Update on order %s", stringField(event.Payload, "orderNumber")),
		Body:    emailBody(event),
	}

	err := e.email.Send(ctx, message)
	if err != nil {
		e.recorder.Record(effectEmail, sideeffect.OutcomeFailed)
		e.log.With(
			logger.NewField("topic", event.Topic),
			logger.NewField("error", err),
		).Warn("email notification failed")
		return
	}
	e.recorder.Record(effectEmail, sideeffect.OutcomeOK)
}

func emailBody(event eventbus.Event) string {
	switch event.Topic {
	case eventbus.TopicOrderCreated:
		return fmt.Sprintf("Your order %s has been placed.", stringField(event.Payload, "orderNumber"))
	case eventbus.TopicOrderStatusUpdated:
		return fmt.Sprintf("Your order %s is now %s.",
			stringField(event.Payload, "orderNumber"), stringField(event.Payload, "newStatus"))
	case eventbus.TopicDeliveryStatusUpdated:
		return fmt.Sprintf("The delivery for order %s is now %s.",
			stringField(event.Payload, "orderNumber"), stringField(event.Payload, "newStatus"))
	case eventbus.TopicInspectionScheduled:
		return stringField(event.Payload, "message")
	default:
		return ""
	}
}

func user(payload map[string]any, idKey, title, message string) entities.Notification {
	return entities.Notification{
		Channel:   entities.NotifyUser,
		Recipient: stringField(payload, idKey),
		Title:     title,
		Message:   message,
	}
}

func role(name, title, message string) entities.Notification {
	return entities.Notification{
		Channel:   entities.NotifyRole,
		Recipient: name,
		Title:     title,
		Message:   message,
	}
}

func stringField(payload map[string]any, key string) string {
	value, _ := payload[key].(string)
	return value
}
