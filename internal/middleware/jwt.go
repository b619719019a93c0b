package middleware // reusable HTTP middleware for the back-office API

import (
	"net/http" // HTTP status codes for responses
	"strings"  // prefix checking on the Authorization header

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-backoffice/internal/session"
	"github.com/iliyamo/property-backoffice/internal/utils"
)

// Context keys set by JWTAuth.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
	CtxJTI    = "jti"
	CtxExp    = "token_exp"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the token's claims into the request context.  The provided secret
// must match the one used when issuing tokens.  Tokens whose id has been
// deny-listed on logout are rejected; revocations may be nil.
func JWTAuth(secret string, revocations session.Revocations) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header is "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

			// Signature, algorithm (HS256 only) and expiry are checked here.
			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			// A Redis failure lets the request through; expiry still
			// bounds the token's lifetime.
			if revocations != nil && claims.ID != "" {
				revoked, err := revocations.Revoked(c.Request().Context(), claims.ID)
				if err != nil {
					c.Logger().Warnf("revocation check for %s: %v", claims.ID, err)
				} else if revoked {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token revoked"})
				}
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxJTI, claims.ID)
			c.Set(CtxExp, claims.Exp)
			return next(c)
		}
	}
}
