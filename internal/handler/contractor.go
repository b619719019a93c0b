package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-backoffice/internal/model"
	"github.com/iliyamo/property-backoffice/internal/repository"
)

// ContractorHandler serves /api/contractors.
type ContractorHandler struct {
	Contractors repository.ContractorRepository
}

func NewContractorHandler(r repository.ContractorRepository) *ContractorHandler {
	return &ContractorHandler{Contractors: r}
}

func (h *ContractorHandler) Create(c echo.Context) error {
	var in model.ContractorPatch
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	con := model.NewContractor()
	in.Apply(con)
	con.Normalize()
	if err := c.Validate(con); err != nil {
		return respondError(c, err, "contractor")
	}

	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Contractors.Create(ctx, con); err != nil {
		return respondError(c, err, "contractor")
	}
	return c.JSON(http.StatusCreated, con)
}

// List handles GET /api/contractors?available=&skill=.
func (h *ContractorHandler) List(c echo.Context) error {
	available, err := boolQuery(c, "available")
	if err != nil {
		return badRequest(c, err.Error())
	}
	f := repository.ContractorFilter{Available: available, Skill: strings.TrimSpace(c.QueryParam("skill"))}
	pg := pageFrom(c)

	ctx, cancel := withTimeout(c)
	defer cancel()
	items, total, err := h.Contractors.List(ctx, f, pg)
	if err != nil {
		return respondError(c, err, "contractor")
	}
	return c.JSON(http.StatusOK, list(items, total, pg))
}

func (h *ContractorHandler) Get(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	con, err := h.Contractors.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "contractor")
	}
	return c.JSON(http.StatusOK, con)
}

func (h *ContractorHandler) Update(c echo.Context) error {
	var in model.ContractorPatch
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	con, err := h.Contractors.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "contractor")
	}
	in.Apply(con)
	con.Normalize()
	if err := c.Validate(con); err != nil {
		return respondError(c, err, "contractor")
	}
	if err := h.Contractors.Update(ctx, con); err != nil {
		return respondError(c, err, "contractor")
	}
	return c.JSON(http.StatusOK, con)
}

func (h *ContractorHandler) Delete(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Contractors.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err, "contractor")
	}
	return deleted(c, "contractor")
}
