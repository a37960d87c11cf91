package order

import (
	"strings"

	"fulfillment/internal/entities"
)

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

func validateCheckout(checkout entities.Checkout) error {
	if !isValidID(checkout.CustomerID) || strings.TrimSpace(checkout.DeliveryAddress) == "" {
		return ErrMissingRequiredFields
	}
	if len(checkout.Items) == 0 {
		return ErrEmptyItems
	}
	for _, item := range checkout.Items {
		if !isValidID(item.FarmerID) || !isValidID(item.ProductID) || item.Quantity <= 0 {
			return ErrInvalidItem
		}
	}
	return nil
}
