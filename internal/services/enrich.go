package services

import "orders-dashboard/internal/models"

// statusLabels is the fixed code-to-label mapping for the order status domain.
var statusLabels = map[string]string{
	"F": "Filled",
	"O": "Open",
	"P": "Pending",
}

// StatusLabel resolves a status code to its display label. Codes outside the
// fixed set become their own label rather than erroring.
func StatusLabel(code string) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return code
}

// Enrich returns a copy of orders with StatusLabel filled in. Pure; an empty
// input yields an empty output.
func Enrich(orders []models.Order) []models.Order {
	enriched := make([]models.Order, len(orders))
	for i, o := range orders {
		o.StatusLabel = StatusLabel(o.Status)
		enriched[i] = o
	}
	return enriched
}
