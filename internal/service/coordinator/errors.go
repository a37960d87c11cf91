package coordinator

import "errors"

var (
	ErrMissingEventField = errors.New("event payload is missing a required field")
	ErrHandoffFailed     = errors.New("pickup handoff failed")
)
