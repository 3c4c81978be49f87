package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	minQRSize     = 128
	maxQRSize     = 1024
	defaultQRSize = 256
)

// OrderPageURL is the link printed on a table: the order page with seating prefilled
func OrderPageURL(base, seating string) string {
	return strings.TrimRight(base, "/") + "/place-new-order?seating=" + url.QueryEscape(seating)
}

func qrSize(raw string) int {
	size, err := strconv.Atoi(raw)
	if err != nil {
		return defaultQRSize
	}
	if size < minQRSize {
		return minQRSize
	}
	if size > maxQRSize {
		return maxQRSize
	}
	return size
}

// SeatingQR renders a PNG QR code for a seating label
func (h *Handler) SeatingQR(c *gin.Context) {
	label := strings.TrimSpace(c.Param("label"))
	if label == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Seating label is required"})
		return
	}

	png, err := qrcode.Encode(OrderPageURL(h.BaseURL, label), qrcode.Medium, qrSize(c.Query("size")))
	if err != nil {
		respondError(c, err, "render QR code")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
