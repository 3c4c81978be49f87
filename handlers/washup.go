package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"lounge-orders/events"
	"lounge-orders/middleware"
	"lounge-orders/services"
	"lounge-orders/washup"

	"github.com/gin-gonic/gin"
)

type WashupStepRequest struct {
	Step string `json:"step"`
}

type WashupRunRequest struct {
	Password     string `json:"password"`
	IncludeUsers bool   `json:"includeUsers"`
}

// RunWashupStep executes exactly one reset step
func (h *Handler) RunWashupStep(c *gin.Context) {
	var req WashupStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	step, err := washup.ParseStep(req.Step)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid step"})
		return
	}
	if err := h.Washup.ExecuteStep(c.Request.Context(), step); err != nil {
		log.Printf("❌ washup: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error", "step": step})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "step": step})
}

// RunWashup confirms the operator's password and runs the whole sequence
func (h *Handler) RunWashup(c *gin.Context) {
	var req WashupRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	res, err := h.Washup.Run(c.Request.Context(), middleware.GetUserID(c), req.Password, req.IncludeUsers)
	var stepErr *washup.StepError
	switch {
	case err == nil:
		log.Printf("🧽 washup completed (%d steps)", len(res.Steps))
		c.JSON(http.StatusOK, res)
	case errors.Is(err, washup.ErrNoPassword):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password is required", "steps": res.Steps})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password", "steps": res.Steps})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found", "steps": res.Steps})
	case errors.As(err, &stepErr):
		log.Printf("❌ washup: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":    "Washup stopped at step " + string(stepErr.Step),
			"steps":      res.Steps,
			"failedStep": res.FailedStep,
		})
	default:
		respondError(c, err, "run washup")
	}
}

// OnWashupStep refreshes the menu cache after a step that touched menu items
// and announces every completed step.
func OnWashupStep(menu *services.MenuService, publisher events.Publisher) func(ctx context.Context, id washup.StepID) {
	return func(ctx context.Context, id washup.StepID) {
		if id == washup.StepMenuPrices || id == washup.StepMenuAvailability {
			menu.InvalidateCache(ctx)
		}
		if publisher == nil {
			return
		}
		if err := publisher.Publish(ctx, events.New(events.WashupStepCompleted, string(id), nil)); err != nil {
			log.Printf("events: publish %s %s: %v", events.WashupStepCompleted, id, err)
		}
	}
}

// WashupPlan describes the steps and the status lifecycle each one goes through
func (h *Handler) WashupPlan(c *gin.Context) {
	var terminal []washup.Status
	for _, s := range washup.Statuses() {
		if washup.Terminal(s) {
			terminal = append(terminal, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"steps":            washup.Steps(c.Query("includeUsers") == "true"),
		"transitions":      washup.Transitions(),
		"terminalStatuses": terminal,
	})
}
