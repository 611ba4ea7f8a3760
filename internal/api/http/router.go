package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-service/internal/api/http/handlers"
	"github.com/spec-kit/case-service/internal/auth"
	"github.com/spec-kit/case-service/internal/config"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Cases          *handlers.CasesHandler
	Officers       *handlers.OfficersHandler
	Public         *handlers.PublicHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        fiber.Handler
	RateLimit      config.RateLimitConfig
	// LimiterStorage shares limiter counters between instances; nil keeps them in memory.
	LimiterStorage fiber.Storage
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/sign_up", cfg.Auth.SignUp)
	authGroup.Post("/sign_in", RateLimiter("sign_in", cfg.RateLimit.SignInPerMinute, cfg.LimiterStorage), cfg.Auth.SignIn)

	app.Post("/public/report", RateLimiter("public_report", cfg.RateLimit.PublicReportPerMinute, cfg.LimiterStorage), cfg.Public.Report)

	cases := app.Group("/cases", cfg.AuthMiddleware.Handle)
	cases.Post("/", cfg.Cases.Create)
	cases.Get("/", cfg.Cases.List)
	cases.Get("/:id", cfg.Cases.Get)
	cases.Put("/:id", cfg.Cases.Update)
	cases.Delete("/:id", cfg.Cases.Delete)

	officers := app.Group("/officers", cfg.AuthMiddleware.Handle)
	officers.Post("/", cfg.Officers.Create)
	officers.Get("/", cfg.Officers.List)
	officers.Get("/:id", cfg.Officers.Get)
	officers.Put("/:id", cfg.Officers.Update)
	officers.Delete("/:id", cfg.Officers.Delete)
}
