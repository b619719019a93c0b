package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-backoffice/internal/media"
	"github.com/iliyamo/property-backoffice/internal/notify"
	"github.com/iliyamo/property-backoffice/internal/repository"
	"github.com/iliyamo/property-backoffice/internal/validation"
)

// storeTimeout bounds every store call made by a handler.
var storeTimeout = 5 * time.Second

func withTimeout(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), storeTimeout)
}

// respondError maps an error from the layers below to a status code and
// the {"error": ...} body.  entity names the resource for not-found and
// duplicate messages.  Unexpected errors are logged and hidden.
func respondError(c echo.Context, err error, entity string) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error(), "details": verr.Fields})
	case errors.Is(err, repository.ErrNotFound):
		msg := err.Error()
		if err == repository.ErrNotFound {
			msg = entity + " not found"
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": msg})
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": entity + " with this email already exists"})
	case errors.Is(err, media.ErrUpload), errors.Is(err, notify.ErrGateway):
		c.Logger().Errorf("%s: %v", entity, err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// pageFrom reads ?page= and ?limit=.  Unparseable values fall back to the
// defaults.
func pageFrom(c echo.Context) repository.Page {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return repository.Page{Page: page, Limit: limit}.Normalize()
}

// boolQuery parses an optional boolean query parameter.
func boolQuery(c echo.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false", name)
	}
	return &b, nil
}

func boolPtr(b bool) *bool { return &b }

// listResponse is the envelope of every listing endpoint.
type listResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func list[T any](items []T, total int64, pg repository.Page) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Total: total, Page: pg.Page, Limit: pg.Limit}
}

// warned sets one Warning header per entry and returns the list, never nil,
// for inclusion in a body.
func warned(c echo.Context, warnings []string) []string {
	for _, w := range warnings {
		c.Response().Header().Add("Warning", fmt.Sprintf("199 - %q", w))
	}
	if warnings == nil {
		return []string{}
	}
	return warnings
}

func deleted(c echo.Context, entity string) error {
	return c.JSON(http.StatusOK, echo.Map{"message": entity + " deleted successfully"})
}
