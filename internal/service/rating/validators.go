package rating

import (
	"strings"

	"fulfillment/internal/entities"
)

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

func validateRating(r entities.Rating) error {
	if !isValidID(r.OrderID) || !isValidID(r.RaterID) || !isValidID(r.RateeID) {
		return ErrMissingRequiredFields
	}
	if !r.Type.Valid() {
		return ErrInvalidRatingType
	}
	if r.Score < 1 || r.Score > 5 {
		return ErrInvalidScore
	}
	return nil
}
