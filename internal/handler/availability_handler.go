package handler

import (
	"net/http"

	"github.com/Eursukkul/session-booking/internal/dto"
	"github.com/Eursukkul/session-booking/internal/middleware"
	"github.com/Eursukkul/session-booking/internal/models"
	"github.com/Eursukkul/session-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type AvailabilityHandler struct {
	svc service.AvailabilityService
}

func NewAvailabilityHandler(svc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

func (h *AvailabilityHandler) RegisterRoutes(api *echo.Group) {
	api.GET("/availability", h.GetAvailability)

	templates := api.Group("/availability-templates", middleware.RequireRole(string(models.RoleAdmin)))
	templates.GET("", h.ListTemplates)
	templates.POST("", h.CreateTemplate)
	templates.PATCH("/:id", h.ToggleTemplate)
	templates.DELETE("/:id", h.DeleteTemplate)
}

func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}

	slots, err := h.svc.GetAvailableSlots(c.Request().Context(), date)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.SlotsResponse{Date: date, Slots: slots})
}

func (h *AvailabilityHandler) ListTemplates(c echo.Context) error {
	templates, err := h.svc.ListTemplates(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTemplateResponses(templates))
}

func (h *AvailabilityHandler) CreateTemplate(c echo.Context) error {
	var req dto.CreateTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.DayOfWeek == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "day_of_week is required")
	}

	template, err := h.svc.AddTemplate(c.Request().Context(), *req.DayOfWeek, req.StartTime, req.DurationMinutes)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToTemplateResponse(template))
}

func (h *AvailabilityHandler) ToggleTemplate(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.ToggleTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.IsActive == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "is_active is required")
	}

	if err := h.svc.ToggleTemplate(c.Request().Context(), id, *req.IsActive); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AvailabilityHandler) DeleteTemplate(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteTemplate(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
