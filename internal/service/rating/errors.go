package rating

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidRatingType     = errors.New("invalid rating type")
	ErrInvalidScore          = errors.New("score must be between 1 and 5")

	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderNotEligible = errors.New("order is not eligible for rating")
	ErrDuplicateRating  = errors.New("rating already submitted")
)
