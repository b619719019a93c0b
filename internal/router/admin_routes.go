package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-backoffice/internal/handler"
	"github.com/iliyamo/property-backoffice/internal/middleware"
	"github.com/iliyamo/property-backoffice/internal/model"
)

// RegisterAdmin mounts user management.  All routes require the Admin role.
func RegisterAdmin(g *echo.Group, u *handler.UserHandler) {
	a := g.Group("/users", middleware.RequireRole(model.RoleAdmin))
	a.POST("", u.Create)
	a.GET("", u.List)
	a.GET("/:id", u.Get)
	a.PUT("/:id", u.Update)
	a.PATCH("/:id", u.Update)
	a.DELETE("/:id", u.Delete)
}
