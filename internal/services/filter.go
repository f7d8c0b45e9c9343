package services

import "orders-dashboard/internal/models"

// ApplyFilter returns the orders matching the conjunctive predicate: order
// date in [f.Start, f.End] inclusive, status in f.Statuses, priority in
// f.Priorities. An empty status or priority selection disables that clause
// rather than matching nothing. Pure; never errors.
func ApplyFilter(orders []models.Order, f models.Filter) []models.Order {
	statusSet := toSet(f.Statuses)
	prioritySet := toSet(f.Priorities)

	matched := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.OrderDate.Before(f.Start) || o.OrderDate.After(f.End) {
			continue
		}
		if len(statusSet) > 0 {
			if _, ok := statusSet[o.Status]; !ok {
				continue
			}
		}
		if len(prioritySet) > 0 {
			if _, ok := prioritySet[o.Priority]; !ok {
				continue
			}
		}
		matched = append(matched, o)
	}
	return matched
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
