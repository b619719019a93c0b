package middleware

// identity.go holds the accessors handlers use to read what JWTAuth put
// into the Echo context.

import (
	"time"

	"github.com/labstack/echo/v4"
)

// UserID returns the authenticated user's id, or "" for anonymous requests.
func UserID(c echo.Context) string {
	s, _ := c.Get(CtxUserID).(string)
	return s
}

// Role returns the role claim of the access token.
func Role(c echo.Context) string {
	s, _ := c.Get(CtxRole).(string)
	return s
}

// Email returns the email claim of the access token.
func Email(c echo.Context) string {
	s, _ := c.Get(CtxEmail).(string)
	return s
}

// TokenID returns the jti of the access token and its expiry.
func TokenID(c echo.Context) (string, time.Time) {
	id, _ := c.Get(CtxJTI).(string)
	exp, _ := c.Get(CtxExp).(time.Time)
	return id, exp
}

// rateUser identifies the caller for rate-limit keys; anonymous callers
// share the "anon" bucket of their IP.
func rateUser(c echo.Context) string {
	if id := UserID(c); id != "" {
		return id
	}
	return "anon"
}
