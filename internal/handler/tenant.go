package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-backoffice/internal/model"
	"github.com/iliyamo/property-backoffice/internal/repository"
	"github.com/iliyamo/property-backoffice/internal/service"
)

// TenantHandler serves /api/tenants including the lease lifecycle routes.
// Read routes attach the property summary through Refs.
type TenantHandler struct {
	Tenants repository.TenantRepository
	Lease   *service.LeaseService
	Refs    *Refs
	now     func() time.Time
}

func NewTenantHandler(t repository.TenantRepository, lease *service.LeaseService, refs *Refs) *TenantHandler {
	return &TenantHandler{Tenants: t, Lease: lease, Refs: refs, now: func() time.Time { return time.Now().UTC() }}
}

// Create handles POST /api/tenants.  The referenced property is marked
// rented afterwards; if that fails the tenant is still created and the
// problem is reported in Warning headers.
func (h *TenantHandler) Create(c echo.Context) error {
	var in model.TenantPatch
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	t := model.NewTenant()
	in.Apply(t, h.now())
	t.Normalize()
	if err := c.Validate(t); err != nil {
		return respondError(c, err, "tenant")
	}

	ctx, cancel := withTimeout(c)
	defer cancel()
	warnings, err := h.Lease.Register(ctx, t)
	if err != nil {
		return respondError(c, err, "tenant")
	}
	warned(c, warnings)
	return c.JSON(http.StatusCreated, t)
}

// List handles GET /api/tenants?propertyId=&leaseStatus=&declined=.
func (h *TenantHandler) List(c echo.Context) error {
	declined, err := boolQuery(c, "declined")
	if err != nil {
		return badRequest(c, err.Error())
	}
	return h.list(c, repository.TenantFilter{
		PropertyID:  strings.TrimSpace(c.QueryParam("propertyId")),
		LeaseStatus: model.LeaseStatus(strings.TrimSpace(c.QueryParam("leaseStatus"))),
		Declined:    declined,
	})
}

// Active handles GET /api/tenants/active: tenants whose lease was not
// declined.
func (h *TenantHandler) Active(c echo.Context) error {
	return h.list(c, repository.TenantFilter{
		PropertyID: strings.TrimSpace(c.QueryParam("propertyId")),
		Declined:   boolPtr(false),
	})
}

func (h *TenantHandler) list(c echo.Context, f repository.TenantFilter) error {
	pg := pageFrom(c)
	ctx, cancel := withTimeout(c)
	defer cancel()
	items, total, err := h.Tenants.List(ctx, f, pg)
	if err != nil {
		return respondError(c, err, "tenant")
	}
	views, err := h.Refs.tenantViews(ctx, items)
	if err != nil {
		return respondError(c, err, "tenant")
	}
	return c.JSON(http.StatusOK, list(views, total, pg))
}

func (h *TenantHandler) Get(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	t, err := h.Tenants.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "tenant")
	}
	views, err := h.Refs.tenantViews(ctx, []*model.Tenant{t})
	if err != nil {
		return respondError(c, err, "tenant")
	}
	return c.JSON(http.StatusOK, views[0])
}

// Update handles PUT and PATCH /api/tenants/:id.  Moving leaseStatus to
// Declined or Ended here stamps the lease end date like the lifecycle
// routes do, but sends no notification.
func (h *TenantHandler) Update(c echo.Context) error {
	var in model.TenantPatch
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	t, err := h.Tenants.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "tenant")
	}
	in.Apply(t, h.now())
	t.Normalize()
	if err := c.Validate(t); err != nil {
		return respondError(c, err, "tenant")
	}
	if err := h.Tenants.Update(ctx, t); err != nil {
		return respondError(c, err, "tenant")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TenantHandler) Delete(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Tenants.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err, "tenant")
	}
	return deleted(c, "tenant")
}

// Decline handles PATCH /api/tenants/:id/decline.
func (h *TenantHandler) Decline(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	t, warnings, err := h.Lease.Decline(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "tenant")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Lease declined successfully",
		"tenant":   t,
		"warnings": warned(c, warnings),
	})
}

// End handles PATCH /api/tenants/:id/end.
func (h *TenantHandler) End(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	t, err := h.Lease.End(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "tenant")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Lease ended successfully", "tenant": t})
}
