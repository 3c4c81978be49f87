package handlers

import (
	"net/http"

	"lounge-orders/middleware"
	"lounge-orders/models"

	"github.com/gin-gonic/gin"
)

// Page describes a screen for the render layer. Access has already been
// decided by middleware.PageAccess.
func (h *Handler) Page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"page": name}
		if claims := middleware.GetClaims(c); claims != nil {
			body["user"] = gin.H{
				"id":          claims.UserID,
				"username":    claims.Username,
				"role":        claims.Role,
				"displayRole": models.User{Username: claims.Username, Role: claims.Role}.DisplayRole(h.Users.DeveloperUsername()),
			}
		}
		if seating := c.Query("seating"); seating != "" {
			body["seating"] = seating
		}
		c.JSON(http.StatusOK, body)
	}
}
