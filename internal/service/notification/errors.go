package notification

import "errors"

var (
	ErrUntaggedEvent    = errors.New("event has no type tag")
	ErrUnknownEventType = errors.New("unknown event type")
)
