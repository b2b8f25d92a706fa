package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Eursukkul/session-booking/internal/service"
	"github.com/labstack/echo/v4"
)

// httpError maps service errors onto status codes. Anything unrecognised is
// a 500 and is logged by the error handler.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSlotUnavailable):
		return echo.NewHTTPError(http.StatusConflict, service.ErrSlotUnavailable.Error())
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrStaleReservation):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrReservationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
