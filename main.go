package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"lounge-orders/cache"
	"lounge-orders/config"
	"lounge-orders/events"
	"lounge-orders/handlers"
	"lounge-orders/middleware"
	"lounge-orders/routes"
	"lounge-orders/services"
	"lounge-orders/washup"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	// Set Gin mode
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.DebugMode)
	}

	cfg := config.Load()
	config.InitDB(cfg.DB)

	ctx := context.Background()

	// Optional menu cache
	var menuCache services.MenuCache
	if cfg.Cache.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			log.Printf("⚠️  Redis unavailable, menu cache disabled: %v", err)
		} else {
			menuCache = cache.NewMenuCache(client, cfg.Cache.MenuTTL)
			log.Printf("✅ Menu cache on %s", cfg.Cache.RedisAddr)
		}
	}

	// Optional event stream
	var publisher events.Publisher = events.Nop{}
	if cfg.Events.KafkaBroker != "" {
		kp := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Events.KafkaBroker, cfg.Events.Topic))
		defer kp.Close()
		publisher = kp
		log.Printf("✅ Publishing events to %s/%s", cfg.Events.KafkaBroker, cfg.Events.Topic)
	}

	menu := services.NewMenuService(config.DB, menuCache, publisher)
	orders := services.NewOrderService(config.DB, publisher)
	passwords, err := services.NewPasswordChecker(cfg.Auth.PasswordMode)
	if err != nil {
		log.Fatal("Invalid PASSWORD_MODE: ", err)
	}
	users := services.NewUserService(config.DB, passwords, cfg.Auth.DeveloperUsername)

	if err := users.EnsureAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
		log.Fatal("Failed to create bootstrap admin:", err)
	}

	sequencer := washup.NewSequencer(
		washup.NewGormStore(config.DB, cfg.Auth.DeveloperUsername),
		users,
		washup.Transactional(cfg.Washup.Transactional),
		washup.OnStepCompleted(handlers.OnWashupStep(menu, publisher)),
	)

	sessions := middleware.NewSessions(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	sessions.Lookup = users.Get

	h := &handlers.Handler{
		Menu:     menu,
		Orders:   orders,
		Users:    users,
		Washup:   sequencer,
		Sessions: sessions,
		BaseURL:  cfg.BaseURL,
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Lounge Orders API",
			"version": "1.0.0",
		})
	})

	// Register all routes
	routes.SetupRoutes(r, h)

	// CORS for the frontend; credentials allowed so the session cookie travels
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Failed to start server:", err)
	}
}
