// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/credchain/credential-registry/internal/config"
	"github.com/credchain/credential-registry/internal/handler"
	"github.com/credchain/credential-registry/internal/middleware"
	"github.com/credchain/credential-registry/internal/model"
)

// RegisterRoutes registers the unauthenticated operational endpoints.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	e.GET("/healthz", handler.Health)
	e.GET("/healthz/db", handler.HealthDB(db))
}

// RegisterAuth registers the account endpoints. Register and login are open;
// profile requires a bearer token of any role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.GET("/profile", a.Profile, middleware.JWTAuth(jwtSecret))
}

// RegisterCredentials registers issuance, listing and verification routes.
// The verify route is public with optional authentication: a valid token
// attributes the audit record, a missing or bad one degrades to anonymous.
// The system-wide listing sits behind the shared response cache since its
// payload is identical for every university.
func RegisterCredentials(e *echo.Echo, h *handler.CredentialHandler, jwtSecret string, rdb *redis.Client) {
	rl := middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	g := e.Group("/credentials")
	g.POST("/issue", h.Issue, middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleUniversity))
	g.GET("/student", h.ListStudent, middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleStudent))
	g.GET("/university", h.ListUniversity, middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleUniversity))
	g.GET("/all", h.ListAll, middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleUniversity), cache)
	g.GET("/verify/:hash", h.Verify, rl, middleware.OptionalJWT(jwtSecret))
	g.GET("/:id/verifications", h.ListVerifications, middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleUniversity))
}

// RegisterStudents registers the university-only provisioning routes.
func RegisterStudents(e *echo.Echo, h *handler.StudentHandler, jwtSecret string, rdb *redis.Client) {
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	g := e.Group("/students", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleUniversity))
	g.POST("/add", h.Add)
	g.GET("", h.List, cache)
}
