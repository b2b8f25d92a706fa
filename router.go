package main

import (
	"net/http"
	"time"

	"github.com/Eursukkul/session-booking/internal/handler"
	"github.com/Eursukkul/session-booking/internal/middleware"
	"github.com/Eursukkul/session-booking/internal/service"
	"github.com/Eursukkul/session-booking/pkg/auth"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type services struct {
	availability service.AvailabilityService
	reservations service.ReservationService
	auth         service.AuthService
}

func newRouter(zlog *zap.Logger, issuer *auth.TokenIssuer, svc services, clock service.Clock, loc *time.Location) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler(zlog)
	e.Use(echoMw.RequestIDWithConfig(echoMw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			zlog.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
	})

	api := e.Group("/api/v1", middleware.Authenticate(issuer))
	handler.NewAvailabilityHandler(svc.availability).RegisterRoutes(api)
	handler.NewReservationHandler(svc.reservations, clock, loc).RegisterRoutes(api)
	handler.NewAuthHandler(svc.auth).RegisterRoutes(api)

	return e
}
