package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-backoffice/internal/config"
	"github.com/iliyamo/property-backoffice/internal/middleware"
	"github.com/iliyamo/property-backoffice/internal/model"
	"github.com/iliyamo/property-backoffice/internal/repository"
	"github.com/iliyamo/property-backoffice/internal/session"
	"github.com/iliyamo/property-backoffice/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg         config.Auth
	Users       repository.UserRepository
	Tokens      repository.TokenRepository
	Revocations session.Revocations
}

func NewAuthHandler(cfg config.Auth, u repository.UserRepository, t repository.TokenRepository, r session.Revocations) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Revocations: r}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type authResp struct {
	User    *model.User `json:"user"`
	Access  tokenPart   `json:"access"`
	Refresh tokenPart   `json:"refresh"`
}

// issue creates an access/refresh pair for u, stores the refresh hash and
// records the access token id as the user's current session.
func (h *AuthHandler) issue(ctx context.Context, u *model.User) (authResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, string(u.Role), u.Email, h.Cfg.AccessTTL())
	if err != nil {
		return authResp{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTL())
	if err != nil {
		return authResp{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return authResp{}, err
	}
	if err := h.Users.SetToken(ctx, u.ID, &access.ID); err != nil {
		return authResp{}, err
	}
	u.Token = &access.ID
	return authResp{
		User:    u,
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	}, nil
}

// Register: create a User-role account and return tokens immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email/password required")
	}
	if err := utils.CheckPassword(req.Password); err != nil {
		return badRequest(c, err.Error())
	}

	u := model.NewUser()
	u.Name, u.Email = req.Name, req.Email
	u.Normalize()
	if err := c.Validate(u); err != nil {
		return respondError(c, err, "user")
	}
	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return respondError(c, err, "user")
	}
	u.PasswordHash = hash

	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Users.Create(ctx, u); err != nil {
		return respondError(c, err, "user")
	}
	resp, err := h.issue(ctx, u)
	if err != nil {
		return respondError(c, err, "user")
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login: verify credentials and return a new pair.  Inactive and
// suspended accounts get 403.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email/password required")
	}

	ctx, cancel := withTimeout(c)
	defer cancel()
	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return respondError(c, err, "user")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if u.Status != model.UserActive {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account is " + strings.ToLower(string(u.Status))})
	}

	resp, err := h.issue(ctx, u)
	if err != nil {
		return respondError(c, err, "user")
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh: validate by hash, revoke old, issue new.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return badRequest(c, "refreshToken required")
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := withTimeout(c)
	defer cancel()
	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return respondError(c, err, "refresh token")
	}

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return respondError(c, err, "user")
	}
	if u.Status != model.UserActive {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account is " + strings.ToLower(string(u.Status))})
	}
	resp, err := h.issue(ctx, u)
	if err != nil {
		return respondError(c, err, "user")
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout (protected) deny-lists the presented access token.  With a
// refreshToken in the body only that session's refresh token is revoked;
// without one every refresh token of the user is.
func (h *AuthHandler) Logout(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req refreshReq
	_ = c.Bind(&req)
	refreshToken := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := withTimeout(c)
	defer cancel()

	if refreshToken != "" {
		hash := utils.HashRefreshRaw(refreshToken)
		owner, err := h.Tokens.ValidateRefresh(ctx, hash)
		if err != nil || owner != uid {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			return respondError(c, err, "refresh token")
		}
	} else if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
		return respondError(c, err, "refresh token")
	}

	if jti, exp := middleware.TokenID(c); jti != "" && h.Revocations != nil {
		if err := h.Revocations.Revoke(ctx, jti, exp); err != nil {
			c.Logger().Warnf("deny-list %s: %v", jti, err)
		}
	}
	if err := h.Users.SetToken(ctx, uid, nil); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return respondError(c, err, "user")
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the stored profile of the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	u, err := h.Users.GetByID(ctx, middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "user")
	}
	return c.JSON(http.StatusOK, u)
}
