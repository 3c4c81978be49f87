package cart

import (
	"math/rand"
	"testing"

	"lounge-orders/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	coffee = Product{ID: "a", Name: "Coffee", Price: 5}
	cake   = Product{ID: "b", Name: "Cake", Price: 3}
)

func TestAddIncrementsExistingLine(t *testing.T) {
	c := New()
	c.Add(coffee)
	c.Add(coffee)
	c.Add(cake)

	assert.Equal(t, 3, c.TotalCount())
	assert.Equal(t, 13.0, c.Subtotal())
	require.Len(t, c.Items(), 2)
}

func TestChangeQuantityRemovesAtZero(t *testing.T) {
	c := New()
	c.Add(coffee)
	c.ChangeQuantity("a", 2)
	assert.Equal(t, 3, c.TotalCount())

	c.ChangeQuantity("a", -5)
	assert.True(t, c.Empty())
	assert.Equal(t, 0.0, c.Subtotal())
}

func TestChangeQuantityUnknownProductIsNoop(t *testing.T) {
	c := New()
	c.ChangeQuantity("missing", 3)
	assert.True(t, c.Empty())
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(coffee)
	c.Add(cake)
	c.Remove("a")

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Product.ID)
}

func TestRandomSequencesKeepInvariants(t *testing.T) {
	products := []Product{coffee, cake, {ID: "c", Name: "Tea", Price: 2.35}}
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		c := New()
		for step := 0; step < 50; step++ {
			p := products[rng.Intn(len(products))]
			switch rng.Intn(3) {
			case 0:
				c.Add(p)
			case 1:
				c.ChangeQuantity(p.ID, rng.Intn(7)-4)
			case 2:
				c.Remove(p.ID)
			}

			var want float64
			count := 0
			for _, it := range c.Items() {
				require.Greater(t, it.Quantity, 0)
				want += it.Product.Price * float64(it.Quantity)
				count += it.Quantity
			}
			assert.InDelta(t, RoundCents(want), c.Subtotal(), 0.0001)
			assert.Equal(t, count, c.TotalCount())
		}
	}
}

func TestCheckout(t *testing.T) {
	c := New()
	c.Add(coffee)
	c.Add(coffee)
	c.Add(cake)

	sub, err := c.Checkout("  Sam ", models.PaymentCard, " Booth 4 ")
	require.NoError(t, err)
	assert.Equal(t, "Sam", sub.CustomerName)
	assert.Equal(t, "Booth 4", sub.Seating)
	assert.Equal(t, 13.0, sub.Subtotal)
	assert.ElementsMatch(t, []Line{{ProductID: "a", Quantity: 2}, {ProductID: "b", Quantity: 1}}, sub.Items)
	assert.False(t, c.Empty())
}

func TestCheckoutValidation(t *testing.T) {
	full := New()
	full.Add(coffee)

	tests := []struct {
		name    string
		cart    *Cart
		cust    string
		payment models.PaymentType
		seating string
		want    error
	}{
		{"empty cart", New(), "Sam", models.PaymentCash, "Bar", ErrEmptyCart},
		{"blank customer", full, "   ", models.PaymentCash, "Bar", ErrMissingCustomer},
		{"no payment", full, "Sam", "", "Bar", ErrMissingPayment},
		{"bogus payment", full, "Sam", "CHEQUE", "Bar", ErrMissingPayment},
		{"blank seating", full, "Sam", models.PaymentCash, " ", ErrMissingSeating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cart.Checkout(tt.cust, tt.payment, tt.seating)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProductFromSnapshotsOptionalFields(t *testing.T) {
	desc := "dark roast"
	p := ProductFrom(models.MenuItem{ID: "x", Name: "Espresso", Price: 2.5, Description: &desc})
	assert.Equal(t, Product{ID: "x", Name: "Espresso", Price: 2.5, Description: "dark roast"}, p)
}
