package client

import (
	"sort"
	"strings"

	"lounge-orders/models"
)

// SortByDescription orders items by description, missing descriptions first
// when ascending. The sort is stable so equal descriptions keep their order.
func SortByDescription(items []models.MenuItem, asc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := description(items[i]), description(items[j])
		if asc {
			return strings.Compare(a, b) < 0
		}
		return strings.Compare(a, b) > 0
	})
}

func description(m models.MenuItem) string {
	if m.Description == nil {
		return ""
	}
	return *m.Description
}
