package handlers_test

import (
	"bytes"
	"image/png"
	"net/http"
	"testing"

	"lounge-orders/handlers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderPageURL(t *testing.T) {
	assert.Equal(t, "http://lounge.test/place-new-order?seating=Booth+4", handlers.OrderPageURL("http://lounge.test/", "Booth 4"))
}

func TestSeatingQR(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/seating/Bar%201/qr?size=200", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}
