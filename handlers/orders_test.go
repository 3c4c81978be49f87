package handlers_test

import (
	"net/http"
	"testing"

	"lounge-orders/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrder(t *testing.T) {
	env := newTestEnv(t)
	a := env.seedMenuItem("Coffee", 5, true)
	b := env.seedMenuItem("Cake", 3, true)

	w := env.do(http.MethodPost, "/orders", map[string]any{
		"customerName": "Sam",
		"paymentType":  "CARD",
		"Seating":      "Booth 4",
		"items": []map[string]any{
			{"productId": a.ID, "quantity": 2},
			{"productId": b.ID, "quantity": 1},
		},
		"subtotal": 13,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	order := decode[models.Order](t, w)
	assert.Equal(t, 13.0, order.Subtotal)
	assert.Len(t, order.Items, 2)
	require.NotNil(t, order.Seating)
	assert.Equal(t, "Booth 4", *order.Seating)
	require.NotNil(t, order.PaymentType)
	assert.Equal(t, models.PaymentCard, *order.PaymentType)
	for _, it := range order.Items {
		assert.NotEmpty(t, it.Product.Name)
	}
}

func TestPlaceOrderRejectsBadBodies(t *testing.T) {
	env := newTestEnv(t)
	a := env.seedMenuItem("Coffee", 5, true)
	line := []map[string]any{{"productId": a.ID, "quantity": 1}}

	tests := []struct {
		name string
		body any
	}{
		{"no items", map[string]any{"subtotal": 5}},
		{"empty items", map[string]any{"items": []any{}, "subtotal": 5}},
		{"missing subtotal", map[string]any{"items": line}},
		{"string subtotal", map[string]any{"items": line, "subtotal": "5"}},
		{"zero quantity", map[string]any{"items": []map[string]any{{"productId": a.ID, "quantity": 0}}, "subtotal": 5}},
		{"bad payment", map[string]any{"items": line, "subtotal": 5, "paymentType": "CHEQUE"}},
		{"unknown product", map[string]any{"items": []map[string]any{{"productId": "nope", "quantity": 1}}, "subtotal": 5}},
		{"malformed json", `{"items": [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/orders", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListOrdersDefaultsLegacyPaymentToCash(t *testing.T) {
	env := newTestEnv(t)
	a := env.seedMenuItem("Coffee", 5, true)

	legacy := models.Order{Subtotal: 5, Items: []models.OrderItem{{ProductID: a.ID, Quantity: 1}}}
	require.NoError(t, env.db.Create(&legacy).Error)

	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/orders", nil, nil).Code)

	w := env.do(http.MethodGet, "/orders", nil, &env.user)
	require.Equal(t, http.StatusOK, w.Code)
	orders := decode[[]map[string]any](t, w)
	require.Len(t, orders, 1)
	assert.Equal(t, "CASH", orders[0]["paymentType"])
	assert.Len(t, orders[0]["items"], 1)
}

func TestDeleteOrder(t *testing.T) {
	env := newTestEnv(t)
	a := env.seedMenuItem("Coffee", 5, true)

	w := env.do(http.MethodPost, "/orders", map[string]any{
		"items":    []map[string]any{{"productId": a.ID, "quantity": 1}},
		"subtotal": 5,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode[models.Order](t, w)

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodDelete, "/orders", nil, &env.user).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodDelete, "/orders?id="+order.ID, nil, &env.user).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, "/orders?id="+order.ID, nil, &env.user).Code)

	var items int64
	require.NoError(t, env.db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, items)
}
