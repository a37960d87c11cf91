package delivery

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidDeliveryID     = errors.New("invalid delivery id")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidLocation       = errors.New("invalid location")

	ErrDeliveryNotFound      = errors.New("delivery not found")
	ErrOrderAlreadyScheduled = errors.New("order already has a delivery")
	ErrStatusConflict        = errors.New("status transition not allowed")
	ErrNotDeliverable        = errors.New("delivery is not at a completable stage")
	ErrConcurrentUpdate      = errors.New("delivery changed concurrently")
)
