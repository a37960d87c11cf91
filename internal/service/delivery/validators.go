package delivery

import (
	"strings"

	"fulfillment/internal/entities"
)

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

func isValidLocation(location entities.GeoPoint) bool {
	return location.Lat >= -90 && location.Lat <= 90 &&
		location.Lng >= -180 && location.Lng <= 180
}
