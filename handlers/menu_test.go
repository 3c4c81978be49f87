package handlers_test

import (
	"net/http"
	"testing"

	"lounge-orders/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMenuItemIgnoresPrice(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/menu-items", map[string]any{
		"name":  "Flat White",
		"price": 9.5,
	}, &env.admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	item := decode[models.MenuItem](t, w)
	assert.Equal(t, "Flat White", item.Name)
	assert.Equal(t, 0.0, item.Price)
	assert.True(t, item.Available)
}

func TestCreateMenuItemValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/menu-items", map[string]any{"name": "   "}, &env.admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/menu-items", map[string]any{"name": "Latte"}, &env.user)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListMenuAvailableVersusAll(t *testing.T) {
	env := newTestEnv(t)
	env.seedMenuItem("Tea", 2, true)
	env.seedMenuItem("Soup", 6, false)

	w := env.do(http.MethodGet, "/menu-items", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	available := decode[[]models.MenuItem](t, w)
	require.Len(t, available, 1)
	assert.Equal(t, "Tea", available[0].Name)

	w = env.do(http.MethodGet, "/menu-items/all", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodGet, "/menu-items/all", nil, &env.user)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.MenuItem](t, w), 2)
}

func TestUpdateMenuItemPriceAndAvailability(t *testing.T) {
	env := newTestEnv(t)
	item := env.seedMenuItem("Tea", 0, false)

	w := env.do(http.MethodPut, "/menu-items/"+item.ID, map[string]any{"price": 3.25, "available": true}, &env.user)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.MenuItem](t, w)
	assert.Equal(t, 3.25, updated.Price)
	assert.True(t, updated.Available)
	assert.Equal(t, "Tea", updated.Name)

	w = env.do(http.MethodPut, "/menu-items/"+item.ID, map[string]any{"price": -1}, &env.user)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPut, "/menu-items/missing", map[string]any{"price": 1}, &env.user)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMenuItemInUseConflicts(t *testing.T) {
	env := newTestEnv(t)
	used := env.seedMenuItem("Tea", 2, true)
	unused := env.seedMenuItem("Soup", 6, true)

	w := env.do(http.MethodPost, "/orders", map[string]any{
		"items":    []map[string]any{{"productId": used.ID, "quantity": 1}},
		"subtotal": 2,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, http.StatusConflict, env.do(http.MethodDelete, "/menu-items/"+used.ID, nil, &env.admin).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodDelete, "/menu-items/"+unused.ID, nil, &env.admin).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, "/menu-items/"+unused.ID, nil, &env.admin).Code)
}
