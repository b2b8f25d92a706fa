package dto

import (
	"time"

	"github.com/Eursukkul/session-booking/internal/models"
)

type SlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type ReservationResponse struct {
	ID          uint                     `json:"id"`
	Name        string                   `json:"name"`
	Email       string                   `json:"email"`
	Phone       string                   `json:"phone,omitempty"`
	ServiceType models.ServiceType       `json:"service_type"`
	Date        string                   `json:"date"`
	TimeSlot    string                   `json:"time_slot"`
	Message     string                   `json:"message,omitempty"`
	Status      models.ReservationStatus `json:"status"`
	AdminNotes  string                   `json:"admin_notes,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

type BookingCreatedResponse struct {
	Reservation ReservationResponse `json:"reservation"`
}

type TemplateResponse struct {
	ID              uint   `json:"id"`
	DayOfWeek       int    `json:"day_of_week"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	IsActive        bool   `json:"is_active"`
}

type UserResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		ServiceType: r.ServiceType,
		Date:        r.Date,
		TimeSlot:    r.TimeSlot,
		Message:     r.Message,
		Status:      r.Status,
		AdminNotes:  r.AdminNotes,
		CreatedAt:   r.CreatedAt,
	}
}

func ToReservationResponses(rs []models.Reservation) []ReservationResponse {
	resp := make([]ReservationResponse, len(rs))
	for i := range rs {
		resp[i] = ToReservationResponse(&rs[i])
	}
	return resp
}

func ToTemplateResponse(t *models.AvailabilityTemplate) TemplateResponse {
	return TemplateResponse{
		ID:              t.ID,
		DayOfWeek:       t.DayOfWeek,
		StartTime:       t.StartTime,
		DurationMinutes: t.DurationMinutes,
		IsActive:        t.IsActive,
	}
}

func ToTemplateResponses(ts []models.AvailabilityTemplate) []TemplateResponse {
	resp := make([]TemplateResponse, len(ts))
	for i := range ts {
		resp[i] = ToTemplateResponse(&ts[i])
	}
	return resp
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
