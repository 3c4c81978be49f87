package handlers

import (
	"net/http"

	"lounge-orders/services"

	"github.com/gin-gonic/gin"
)

// CreateMenuItemRequest has no price: new items always start at 0
type CreateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required,notblank"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

type UpdateMenuItemRequest struct {
	Name        *string  `json:"name" binding:"omitempty,notblank"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Available   *bool    `json:"available"`
}

// ListMenu returns what customers can order
func (h *Handler) ListMenu(c *gin.Context) {
	items, err := h.Menu.List(c.Request.Context(), true)
	if err != nil {
		respondError(c, err, "fetch menu items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListAllMenu includes unavailable items, for staff screens
func (h *Handler) ListAllMenu(c *gin.Context) {
	items, err := h.Menu.List(c.Request.Context(), false)
	if err != nil {
		respondError(c, err, "fetch menu items")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Menu.Create(c.Request.Context(), services.CreateMenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		respondError(c, err, "create menu item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateMenuItem(c *gin.Context) {
	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Menu.Update(c.Request.Context(), c.Param("id"), services.MenuItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Available:   req.Available,
	})
	if err != nil {
		respondError(c, err, "update menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteMenuItem(c *gin.Context) {
	if err := h.Menu.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "delete menu item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
