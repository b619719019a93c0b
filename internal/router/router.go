// Package router registers the HTTP routes of the back-office API.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/property-backoffice/internal/config"
	"github.com/iliyamo/property-backoffice/internal/handler"
	"github.com/iliyamo/property-backoffice/internal/middleware"
	"github.com/iliyamo/property-backoffice/internal/session"
	"github.com/iliyamo/property-backoffice/internal/validation"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Properties  *handler.PropertyHandler
	Tenants     *handler.TenantHandler
	Contractors *handler.ContractorHandler
	Maintenance *handler.MaintenanceHandler
	Users       *handler.UserHandler
	Stats       *handler.StatsHandler
}

// Options carries the middleware settings.
type Options struct {
	JWTSecret   string
	Revocations session.Revocations
	RateLimit   config.RateLimitConfig
	Redis       *redis.Client
	BodyLimit   string
}

// New builds the Echo instance: validator, edge middleware and all routes.
func New(h Handlers, opt Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	if opt.BodyLimit == "" {
		opt.BodyLimit = "10M"
	}
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit(opt.BodyLimit))

	RegisterRoutes(e)
	auth := middleware.JWTAuth(opt.JWTSecret, opt.Revocations)
	limit := middleware.RateLimit(opt.RateLimit, opt.Redis)
	RegisterAuth(e, h.Auth, auth, limit)

	api := e.Group("/api", auth, limit)
	RegisterBackOffice(api, h)
	RegisterAdmin(api, h.Users)
	return e
}

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth mounts /api/auth (open, rate limited) and the two session
// routes that need a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, auth, limit echo.MiddlewareFunc) {
	g := e.Group("/api/auth", limit)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout, auth)

	e.GET("/api/me", a.Me, auth, limit)
}
