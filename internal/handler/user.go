package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-backoffice/internal/model"
	"github.com/iliyamo/property-backoffice/internal/repository"
	"github.com/iliyamo/property-backoffice/internal/utils"
)

// UserHandler serves the admin-only /api/users routes.
type UserHandler struct {
	Users      repository.UserRepository
	BcryptCost int
}

func NewUserHandler(u repository.UserRepository, bcryptCost int) *UserHandler {
	return &UserHandler{Users: u, BcryptCost: bcryptCost}
}

// setPassword checks and hashes a new password onto u.
func (h *UserHandler) setPassword(u *model.User, plain string) error {
	if err := utils.CheckPassword(plain); err != nil {
		return err
	}
	hash, err := utils.HashPassword(plain, h.BcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (h *UserHandler) Create(c echo.Context) error {
	var in model.UserPatch
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if in.Password == nil {
		return badRequest(c, "password is required")
	}
	u := model.NewUser()
	in.Apply(u)
	u.Normalize()
	if err := c.Validate(u); err != nil {
		return respondError(c, err, "user")
	}
	if err := h.setPassword(u, *in.Password); err != nil {
		if errors.Is(err, utils.ErrWeakPassword) {
			return badRequest(c, err.Error())
		}
		return respondError(c, err, "user")
	}

	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Users.Create(ctx, u); err != nil {
		return respondError(c, err, "user")
	}
	return c.JSON(http.StatusCreated, u)
}

// List handles GET /api/users?role=&status=.
func (h *UserHandler) List(c echo.Context) error {
	f := repository.UserFilter{
		Role:   model.Role(strings.TrimSpace(c.QueryParam("role"))),
		Status: model.UserStatus(strings.TrimSpace(c.QueryParam("status"))),
	}
	pg := pageFrom(c)

	ctx, cancel := withTimeout(c)
	defer cancel()
	items, total, err := h.Users.List(ctx, f, pg)
	if err != nil {
		return respondError(c, err, "user")
	}
	return c.JSON(http.StatusOK, list(items, total, pg))
}

func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	u, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "user")
	}
	return c.JSON(http.StatusOK, u)
}

// Update handles PUT and PATCH /api/users/:id.  A supplied password is
// re-hashed.
func (h *UserHandler) Update(c echo.Context) error {
	var in model.UserPatch
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	u, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "user")
	}
	in.Apply(u)
	u.Normalize()
	if err := c.Validate(u); err != nil {
		return respondError(c, err, "user")
	}
	if in.Password != nil {
		if err := h.setPassword(u, *in.Password); err != nil {
			if errors.Is(err, utils.ErrWeakPassword) {
				return badRequest(c, err.Error())
			}
			return respondError(c, err, "user")
		}
	}
	if err := h.Users.Update(ctx, u); err != nil {
		return respondError(c, err, "user")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Delete(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Users.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err, "user")
	}
	return deleted(c, "user")
}
