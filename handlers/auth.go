package handlers

import (
	"errors"
	"net/http"

	"lounge-orders/middleware"
	"lounge-orders/models"
	"lounge-orders/services"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required,notblank"`
	Password string `json:"password" binding:"required"`
}

type VerifyPasswordRequest struct {
	Password string `json:"password"`
}

// userView adds the display-only role label to a user
type userView struct {
	models.User
	DisplayRole string `json:"displayRole"`
}

func (h *Handler) view(u models.User) userView {
	return userView{User: u, DisplayRole: u.DisplayRole(h.Users.DeveloperUsername())}
}

// Login checks credentials and starts a session
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		respondError(c, err, "log in")
		return
	}

	token, err := h.Sessions.GenerateToken(user)
	if err != nil {
		respondError(c, err, "generate token")
		return
	}
	h.Sessions.SetCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": h.view(*user)})
}

func (h *Handler) Logout(c *gin.Context) {
	h.Sessions.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the signed-in user
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Users.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			// account was removed after the session was issued
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		respondError(c, err, "fetch profile")
		return
	}
	c.JSON(http.StatusOK, h.view(*user))
}

// VerifyPassword re-checks the session user's password before destructive actions
func (h *Handler) VerifyPassword(c *gin.Context) {
	var req VerifyPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password is required"})
		return
	}

	err := h.Users.VerifyPassword(c.Request.Context(), middleware.GetUserID(c), req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
	default:
		respondError(c, err, "verify password")
	}
}
