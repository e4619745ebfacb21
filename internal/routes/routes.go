package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/demostack/userhub/internal/handlers"
	"github.com/demostack/userhub/internal/middleware"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(router chi.Router, userHandler *handlers.UserHandler) {
	rateLimitConfig := middleware.DefaultWriteRateLimit()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(rateLimitConfig))
		userHandler.RegisterRoutes(r)
	})
}
