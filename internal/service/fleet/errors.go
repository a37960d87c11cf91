package fleet

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidDriverID       = errors.New("invalid driver id")
	ErrInvalidVehicleID      = errors.New("invalid vehicle id")
	ErrInvalidStatus         = errors.New("invalid status")

	ErrDriverNotFound  = errors.New("driver not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrConflict        = errors.New("resource already exists")
)
