package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Eursukkul/session-booking/internal/dto"
	"github.com/Eursukkul/session-booking/internal/middleware"
	"github.com/Eursukkul/session-booking/internal/models"
	"github.com/Eursukkul/session-booking/internal/service"
	"github.com/Eursukkul/session-booking/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegister_Handler_Success(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (*models.User, string, error) {
			return &models.User{ID: "u1", Name: name, Email: email, Role: models.RoleClient}, "tok", nil
		},
	}

	e := echo.New()
	body := `{"name":"Ada","email":"ada@example.com","password":"correct horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewAuthHandler(svc).Register(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.AuthResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, models.RoleClient, resp.User.Role)
}

func TestRegister_Handler_EmailTaken(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (*models.User, string, error) {
			return nil, "", service.ErrEmailTaken
		},
	}

	e := echo.New()
	body := `{"name":"Ada","email":"ada@example.com","password":"correct horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewAuthHandler(svc).Register(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestLogin_Handler_BadCredentials(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (*models.User, string, error) {
			return nil, "", service.ErrInvalidCredentials
		},
	}

	e := echo.New()
	body := `{"email":"ada@example.com","password":"nope"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewAuthHandler(svc).Login(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestLogin_Handler_MissingFields(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ada@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewAuthHandler(nil).Login(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestMe_Handler_ThroughRouter(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	svc := &mockAuthService{
		getUserFn: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Name: "Ada", Email: "ada@example.com", Role: models.RoleClient}, nil
		},
	}

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(zap.NewNop())
	api := e.Group("/api/v1", middleware.Authenticate(issuer))
	NewAuthHandler(svc).RegisterRoutes(api)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := issuer.Issue(auth.Identity{UserID: "u1", Email: "ada@example.com", Role: "client"})
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.UserResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.ID)
	assert.Equal(t, "Ada", resp.Name)
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	svc := &mockReservationService{
		listFn: func(ctx context.Context) ([]models.Reservation, error) {
			return nil, nil
		},
	}

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(zap.NewNop())
	api := e.Group("/api/v1", middleware.Authenticate(issuer))
	NewReservationHandler(svc, testClock, time.UTC).RegisterRoutes(api)

	client, _ := issuer.Issue(auth.Identity{UserID: "u1", Role: "client"})
	admin, _ := issuer.Issue(auth.Identity{UserID: "u2", Role: "admin"})

	for _, tc := range []struct {
		token string
		want  int
	}{
		{"", http.StatusUnauthorized},
		{client, http.StatusForbidden},
		{admin, http.StatusOK},
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil)
		if tc.token != "" {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+tc.token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBooking))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
