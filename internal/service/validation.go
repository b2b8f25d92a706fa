package service

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Eursukkul/session-booking/internal/models"
)

type CreateReservationInput struct {
	Name        string
	Email       string
	Phone       string
	ServiceType models.ServiceType
	Date        string
	TimeSlot    string
	Message     string
}

// ValidateBookingInput checks a booking request before it reaches the
// reservation writer: required fields, a known service type, a well-formed
// date that is not before today in loc, and an HH:MM slot.
func ValidateBookingInput(in CreateReservationInput, now time.Time, loc *time.Location) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !isEmail(in.Email) {
		return fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if !in.ServiceType.Valid() {
		return fmt.Errorf("%w: unknown service type %q", ErrValidation, in.ServiceType)
	}
	day, err := models.ParseDate(in.Date, loc)
	if err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	today := now.In(loc).Format(models.DateLayout)
	if day.Format(models.DateLayout) < today {
		return fmt.Errorf("%w: date is in the past", ErrValidation)
	}
	if !models.IsTimeSlot(in.TimeSlot) {
		return fmt.Errorf("%w: time slot must be HH:MM", ErrValidation)
	}
	return nil
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
