package handler

import (
	"net/http"
	"time"

	"github.com/Eursukkul/session-booking/internal/dto"
	"github.com/Eursukkul/session-booking/internal/middleware"
	"github.com/Eursukkul/session-booking/internal/models"
	"github.com/Eursukkul/session-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type ReservationHandler struct {
	svc   service.ReservationService
	clock service.Clock
	loc   *time.Location
}

func NewReservationHandler(svc service.ReservationService, clock service.Clock, loc *time.Location) *ReservationHandler {
	return &ReservationHandler{svc: svc, clock: clock, loc: loc}
}

func (h *ReservationHandler) RegisterRoutes(api *echo.Group) {
	api.POST("/bookings", h.CreateBooking, middleware.RequireAuth)

	reservations := api.Group("/reservations", middleware.RequireRole(string(models.RoleAdmin)))
	reservations.GET("", h.ListReservations)
	reservations.GET("/:id", h.GetReservation)
	reservations.PATCH("/:id", h.UpdateReservation)
	reservations.DELETE("/:id", h.DeleteReservation)
}

func (h *ReservationHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	in := service.CreateReservationInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ServiceType: models.ServiceType(req.ServiceType),
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
		Message:     req.Message,
	}
	if err := service.ValidateBookingInput(in, h.clock.Now(), h.loc); err != nil {
		return httpError(err)
	}

	reservation, err := h.svc.CreateReservation(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, dto.BookingCreatedResponse{
		Reservation: dto.ToReservationResponse(reservation),
	})
}

func (h *ReservationHandler) ListReservations(c echo.Context) error {
	reservations, err := h.svc.ListReservations(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponses(reservations))
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	reservation, err := h.svc.GetReservation(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) UpdateReservation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Status == nil && req.AdminNotes == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "status or admin_notes is required")
	}

	reservation, err := h.svc.UpdateReservation(c.Request().Context(), id, req.Status, req.AdminNotes)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) DeleteReservation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteReservation(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
