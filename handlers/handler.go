package handlers

import (
	"errors"
	"log"
	"net/http"

	"lounge-orders/middleware"
	"lounge-orders/services"
	"lounge-orders/washup"

	"github.com/gin-gonic/gin"
)

// Handler serves the JSON API and page routes
type Handler struct {
	Menu     *services.MenuService
	Orders   *services.OrderService
	Users    *services.UserService
	Washup   *washup.Sequencer
	Sessions *middleware.Sessions
	// BaseURL is where customers reach the order page, used in seating QR codes
	BaseURL string
}

// respondError maps service errors to status codes. Anything unexpected is
// logged and reported as "Failed to <action>".
func respondError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items are required"})
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrUnknownProduct):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, services.ErrProtectedUser):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrMenuItemInUse), errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("❌ %s: %v", action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
