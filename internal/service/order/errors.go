package order

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidOrderID        = errors.New("invalid order id")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrEmptyItems            = errors.New("order has no items")
	ErrInvalidItem           = errors.New("invalid order item")

	ErrOrderNotFound    = errors.New("order not found")
	ErrStatusConflict   = errors.New("status transition not allowed")
	ErrOrderNotPending  = errors.New("order can no longer be cancelled")
	ErrDuplicateNumber  = errors.New("order number already exists")
	ErrConcurrentUpdate = errors.New("order changed concurrently")
)
