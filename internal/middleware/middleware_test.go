package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Eursukkul/session-booking/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(issuer *auth.TokenIssuer) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(zap.NewNop())
	e.Use(Authenticate(issuer))

	ok := func(c echo.Context) error {
		return c.JSON(http.StatusOK, CurrentUser(c))
	}
	e.GET("/me", ok, RequireAuth)
	e.GET("/admin", ok, RequireRole("admin"))
	e.GET("/boom", func(c echo.Context) error { return errors.New("db exploded") })
	return e
}

func do(e *echo.Echo, path string, setup func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuth_BearerAndCookie(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	e := newServer(issuer)

	tok, err := issuer.Issue(auth.Identity{UserID: "u1", Email: "a@example.com", Role: "client"})
	require.NoError(t, err)

	rec := do(e, "/me", func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+tok) })
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":"u1"`)

	rec = do(e, "/me", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: tok}) })
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_Unauthenticated(t *testing.T) {
	e := newServer(auth.NewTokenIssuer("secret", time.Hour))

	rec := do(e, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"authentication required"}`, rec.Body.String())

	rec = do(e, "/me", func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer garbage") })
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	e := newServer(issuer)

	client, _ := issuer.Issue(auth.Identity{UserID: "u1", Role: "client"})
	admin, _ := issuer.Issue(auth.Identity{UserID: "u2", Role: "admin"})

	rec := do(e, "/admin", func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+client) })
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(e, "/admin", func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+admin) })
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestErrorHandler_HidesInternalErrors(t *testing.T) {
	e := newServer(auth.NewTokenIssuer("secret", time.Hour))

	rec := do(e, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, rec.Body.String())

	rec = do(e, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Not Found"}`, rec.Body.String())
}
