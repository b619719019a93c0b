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

// MaintenanceHandler serves /api/maintenance.  Read routes attach tenant,
// property and contractor summaries through Refs.
type MaintenanceHandler struct {
	Requests repository.MaintenanceRepository
	Workflow *service.MaintenanceService
	Refs     *Refs
	now      func() time.Time
}

func NewMaintenanceHandler(r repository.MaintenanceRepository, wf *service.MaintenanceService, refs *Refs) *MaintenanceHandler {
	return &MaintenanceHandler{Requests: r, Workflow: wf, Refs: refs, now: func() time.Time { return time.Now().UTC() }}
}

func (h *MaintenanceHandler) Create(c echo.Context) error {
	var in model.MaintenancePatch
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	m := model.NewMaintenanceRequest(h.now())
	in.Apply(m)
	m.Normalize()
	if err := c.Validate(m); err != nil {
		return respondError(c, err, "maintenance request")
	}

	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Requests.Create(ctx, m); err != nil {
		return respondError(c, err, "maintenance request")
	}
	return c.JSON(http.StatusCreated, m)
}

// List handles GET /api/maintenance?status=&priority=&tenantId=&propertyId=&contractorId=.
func (h *MaintenanceHandler) List(c echo.Context) error {
	q := func(name string) string { return strings.TrimSpace(c.QueryParam(name)) }
	f := repository.MaintenanceFilter{
		Status:       model.MaintenanceStatus(q("status")),
		Priority:     model.Priority(q("priority")),
		TenantID:     q("tenantId"),
		PropertyID:   q("propertyId"),
		ContractorID: q("contractorId"),
	}
	pg := pageFrom(c)

	ctx, cancel := withTimeout(c)
	defer cancel()
	items, total, err := h.Requests.List(ctx, f, pg)
	if err != nil {
		return respondError(c, err, "maintenance request")
	}
	views, err := h.Refs.maintenanceViews(ctx, items)
	if err != nil {
		return respondError(c, err, "maintenance request")
	}
	return c.JSON(http.StatusOK, list(views, total, pg))
}

func (h *MaintenanceHandler) Get(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	m, err := h.Requests.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "maintenance request")
	}
	views, err := h.Refs.maintenanceViews(ctx, []*model.MaintenanceRequest{m})
	if err != nil {
		return respondError(c, err, "maintenance request")
	}
	return c.JSON(http.StatusOK, views[0])
}

// Update handles PUT and PATCH /api/maintenance/:id.  The contractor and
// assignment date are not part of the patch; use the assign route.
func (h *MaintenanceHandler) Update(c echo.Context) error {
	var in model.MaintenancePatch
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	m, err := h.Requests.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "maintenance request")
	}
	in.Apply(m)
	m.Normalize()
	if err := c.Validate(m); err != nil {
		return respondError(c, err, "maintenance request")
	}
	if err := h.Requests.Update(ctx, m); err != nil {
		return respondError(c, err, "maintenance request")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MaintenanceHandler) Delete(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Requests.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err, "maintenance request")
	}
	return deleted(c, "maintenance request")
}

type assignReq struct {
	ContractorID   string     `json:"contractorId"`
	AssignmentDate *time.Time `json:"assignmentDate"`
}

// Assign handles PUT /api/maintenance/:id/assign.  Notification failures
// do not undo the assignment; they are listed under "warnings".
func (h *MaintenanceHandler) Assign(c echo.Context) error {
	var req assignReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	req.ContractorID = strings.TrimSpace(req.ContractorID)
	if req.ContractorID == "" {
		return badRequest(c, "contractorId is required")
	}

	ctx, cancel := withTimeout(c)
	defer cancel()
	m, warnings, err := h.Workflow.AssignContractor(ctx, c.Param("id"), req.ContractorID, req.AssignmentDate)
	if err != nil {
		return respondError(c, err, "maintenance request")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Contractor assigned successfully",
		"data":     m,
		"warnings": warned(c, warnings),
	})
}
