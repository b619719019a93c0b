package router

import (
	"github.com/labstack/echo/v4"
)

// RegisterBackOffice mounts the entity routes on g, which already carries
// JWT auth.  Any authenticated role may use them.
func RegisterBackOffice(g *echo.Group, h Handlers) {
	// ---- Properties ----
	p := h.Properties
	g.POST("/properties", p.Create)
	g.GET("/properties", p.List)
	g.GET("/properties/available", p.Available)
	g.GET("/properties/:id", p.Get)
	g.PUT("/properties/:id", p.Update)
	g.PATCH("/properties/:id", p.Update)
	g.DELETE("/properties/:id", p.Delete)
	g.POST("/properties/:id/image", p.UploadImage)
	g.POST("/upload", p.Upload)

	// ---- Tenants ----
	t := h.Tenants
	g.POST("/tenants", t.Create)
	g.GET("/tenants", t.List)
	g.GET("/tenants/active", t.Active)
	g.GET("/tenants/:id", t.Get)
	g.PUT("/tenants/:id", t.Update)
	g.PATCH("/tenants/:id", t.Update)
	g.DELETE("/tenants/:id", t.Delete)
	g.PATCH("/tenants/:id/decline", t.Decline)
	g.PATCH("/tenants/:id/end", t.End)

	// ---- Contractors ----
	c := h.Contractors
	g.POST("/contractors", c.Create)
	g.GET("/contractors", c.List)
	g.GET("/contractors/:id", c.Get)
	g.PUT("/contractors/:id", c.Update)
	g.PATCH("/contractors/:id", c.Update)
	g.DELETE("/contractors/:id", c.Delete)

	// ---- Maintenance ----
	m := h.Maintenance
	g.POST("/maintenance", m.Create)
	g.GET("/maintenance", m.List)
	g.GET("/maintenance/:id", m.Get)
	g.PUT("/maintenance/:id", m.Update)
	g.PATCH("/maintenance/:id", m.Update)
	g.DELETE("/maintenance/:id", m.Delete)
	g.PUT("/maintenance/:id/assign", m.Assign)

	// ---- Counts ----
	g.GET("/stats", h.Stats.Counts)
	g.GET("/dashboard", h.Stats.Counts)
}
