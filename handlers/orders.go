package handlers

import (
	"net/http"

	"lounge-orders/models"
	"lounge-orders/services"

	"github.com/gin-gonic/gin"
)

type OrderLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderRequest mirrors cart.Submission on the wire
type PlaceOrderRequest struct {
	CustomerName *string             `json:"customerName"`
	PaymentType  *models.PaymentType `json:"paymentType" binding:"omitempty,oneof=CASH CARD"`
	Seating      *string             `json:"Seating"`
	Items        []OrderLineRequest  `json:"items" binding:"dive"`
	Subtotal     *float64            `json:"subtotal"`
}

// ListOrders returns every order, newest first
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.Orders.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "fetch orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// PlaceOrder is the customer checkout endpoint
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items are required"})
		return
	}
	if req.Subtotal == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subtotal is required"})
		return
	}

	lines := make([]services.OrderLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, services.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := h.Orders.Submit(c.Request.Context(), services.SubmitOrderInput{
		CustomerName: req.CustomerName,
		PaymentType:  req.PaymentType,
		Seating:      req.Seating,
		Items:        lines,
		Subtotal:     *req.Subtotal,
	})
	if err != nil {
		respondError(c, err, "create order")
		return
	}
	c.JSON(http.StatusCreated, order.WithDefaults())
}

// DeleteOrder takes the id from the query string: DELETE /orders?id=...
func (h *Handler) DeleteOrder(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order id is required"})
		return
	}
	if err := h.Orders.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
