package dto

import "github.com/Eursukkul/session-booking/internal/models"

type CreateBookingRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ServiceType string `json:"service_type"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
	Message     string `json:"message"`
}

type CreateTemplateRequest struct {
	DayOfWeek       *int   `json:"day_of_week"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

type ToggleTemplateRequest struct {
	IsActive *bool `json:"is_active"`
}

// UpdateReservationRequest carries a partial update; absent fields are left
// unchanged.
type UpdateReservationRequest struct {
	Status     *models.ReservationStatus `json:"status"`
	AdminNotes *string                   `json:"admin_notes"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
