package routes

import (
	"log"

	"lounge-orders/handlers"
	"lounge-orders/middleware"
	"lounge-orders/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// pages served behind middleware.PageAccess
var pages = map[string]string{
	"/login":                      "login",
	"/register":                   "register",
	"/place-new-order":            "place-new-order",
	"/dashboard":                  "dashboard",
	"/dashboard/all-orders":       "all-orders",
	"/dashboard/menu-prices":      "menu-prices",
	"/dashboard/menu":             "menu",
	"/dashboard/users-management": "users-management",
	"/dashboard/washup":           "washup",
	"/admin-dashboard":            "admin-dashboard",
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	registerValidators()
	s := h.Sessions

	// ── Public routes ──────────────────────────────────────────────
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/menu-items", h.ListMenu)
	r.POST("/orders", h.PlaceOrder)
	r.GET("/seating/:label/qr", h.SeatingQR)

	// ── Staff routes (any signed-in user) ──────────────────────────
	staff := r.Group("/")
	staff.Use(s.AuthRequired())
	{
		staff.GET("/auth/me", h.Me)
		staff.POST("/auth/verify-password", h.VerifyPassword)

		staff.GET("/menu-items/all", h.ListAllMenu)
		// prices and availability are edited from the order-taking screens
		staff.PUT("/menu-items/:id", h.UpdateMenuItem)

		staff.GET("/orders", h.ListOrders)
		staff.DELETE("/orders", h.DeleteOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/")
	admin.Use(s.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/menu-items", h.CreateMenuItem)
		admin.DELETE("/menu-items/:id", h.DeleteMenuItem)

		admin.GET("/users", h.ListUsers)
		admin.POST("/users", h.CreateUser)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.GET("/washup/steps", h.WashupPlan)
		admin.POST("/washup", h.RunWashupStep)
		admin.POST("/washup/run", h.RunWashup)
	}

	// ── Pages ──────────────────────────────────────────────────────
	ui := r.Group("/")
	ui.Use(s.PageAccess())
	for path, name := range pages {
		ui.GET(path, h.Page(name))
	}
}

func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		log.Printf("⚠️  register notblank validator: %v", err)
	}
}
