package rating

import "fulfillment/internal/entities"

func ToDomain(r *RatingDB) *entities.Rating {
	if r == nil {
		return nil
	}
	return &entities.Rating{
		ID:        r.ID,
		OrderID:   r.OrderID,
		RaterID:   r.RaterID,
		RateeID:   r.RateeID,
		Type:      entities.RatingType(r.Type),
		Score:     r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func ToDomainList(ratingsDB []RatingDB) []entities.Rating {
	if len(ratingsDB) == 0 {
		return []entities.Rating{}
	}

	result := make([]entities.Rating, len(ratingsDB))
	for i := range ratingsDB {
		result[i] = *ToDomain(&ratingsDB[i])
	}
	return result
}
