package fleet

import (
	"strings"

	"fulfillment/internal/entities"
)

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

// isAssignable filters out empty and placeholder driver/vehicle references
// that a delivery may still carry before a distributor filled them in.
func isAssignable(id string) bool {
	return isValidID(id) && id != entities.PlaceholderAssignee
}
