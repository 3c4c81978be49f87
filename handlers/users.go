package handlers

import (
	"net/http"

	"lounge-orders/models"
	"lounge-orders/services"

	"github.com/gin-gonic/gin"
)

type CreateUserRequest struct {
	Username string          `json:"username" binding:"required,notblank"`
	Password string          `json:"password" binding:"required,min=6"`
	Name     *string         `json:"name"`
	Role     models.UserRole `json:"role" binding:"omitempty,oneof=USER ADMIN"`
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "fetch users")
		return
	}
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, h.view(u))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Users.Create(c.Request.Context(), services.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err, "create user")
		return
	}
	c.JSON(http.StatusCreated, h.view(*user))
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
