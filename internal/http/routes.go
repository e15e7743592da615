package http

import (
	"processcraft/internal/config"
	"processcraft/internal/http/handlers"
	"processcraft/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, version string, cfg *config.Config) {
	h := handlers.NewHandler(db, cfg.BcryptCost)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, h, cfg)

	// Legacy /api routes kept for backward compatibility
	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	api.GET("/health", healthHandler.Health)
	registerAPIRoutes(api, h, cfg)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config) {
	// Auth
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	api.POST("/auth/register", authRL, h.Register)
	api.POST("/auth/login", authRL, h.Login)

	api.GET("/me", middleware.Auth(), h.Me)

	// Dashboard summary
	api.GET("/dashboard/summary", middleware.Auth(), h.DashboardSummary)

	// Per-user limiter for write operations
	mutRL := middleware.MutationRateLimit(cfg.MutationRateLimit, cfg.MutationRateWindow)

	// Projects
	api.GET("/projects", middleware.Auth(), h.ListProjects)
	api.POST("/projects", middleware.Auth(), mutRL, h.CreateProject)
	api.GET("/projects/:id", middleware.Auth(), h.GetProject)
	api.PUT("/projects/:id", middleware.Auth(), mutRL, h.UpdateProject)
	api.DELETE("/projects/:id", middleware.Auth(), mutRL, h.DeleteProject)
	api.GET("/projects/:id/tasks", middleware.Auth(), h.ListProjectTasks)

	// Tasks
	api.POST("/tasks", middleware.Auth(), mutRL, h.CreateTask)
	api.PATCH("/tasks/:id", middleware.Auth(), mutRL, h.UpdateTask)
	api.PATCH("/tasks/:id/move", middleware.Auth(), mutRL, h.MoveTask)
	api.DELETE("/tasks/:id", middleware.Auth(), mutRL, h.DeleteTask)
}
