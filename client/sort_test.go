package client

import (
	"testing"

	"lounge-orders/models"

	"github.com/stretchr/testify/assert"
)

func names(items []models.MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestSortByDescription(t *testing.T) {
	sweet, bitter := "sweet", "bitter"
	items := []models.MenuItem{
		{Name: "Cake", Description: &sweet},
		{Name: "Water"},
		{Name: "Coffee", Description: &bitter},
	}

	SortByDescription(items, true)
	assert.Equal(t, []string{"Water", "Coffee", "Cake"}, names(items))

	SortByDescription(items, false)
	assert.Equal(t, []string{"Cake", "Coffee", "Water"}, names(items))
}
