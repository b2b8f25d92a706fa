package middleware

import (
	"net/http"
	"strings"

	"github.com/Eursukkul/session-booking/pkg/auth"
	"github.com/labstack/echo/v4"
)

const (
	identityKey = "identity"
	tokenCookie = "token"
)

// Authenticate resolves the caller from a Bearer header or the token cookie.
// Requests without a valid token pass through anonymously.
func Authenticate(issuer *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tok := tokenFromRequest(c); tok != "" {
				if id, err := issuer.Parse(tok); err == nil {
					c.Set(identityKey, id)
				}
			}
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
	}
	if ck, err := c.Cookie(tokenCookie); err == nil {
		return ck.Value
	}
	return ""
}

// CurrentUser returns the authenticated identity or nil.
func CurrentUser(c echo.Context) *auth.Identity {
	id, _ := c.Get(identityKey).(*auth.Identity)
	return id
}

func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		return next(c)
	}
}

func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := CurrentUser(c)
			if id == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if id.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
