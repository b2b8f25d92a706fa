package handler

import (
	"context"

	"github.com/Eursukkul/session-booking/internal/models"
	"github.com/Eursukkul/session-booking/internal/service"
)

// --- Mock AvailabilityService ---

type mockAvailabilityService struct {
	slotsFn  func(ctx context.Context, date string) ([]string, error)
	listFn   func(ctx context.Context) ([]models.AvailabilityTemplate, error)
	addFn    func(ctx context.Context, day int, start string, duration int) (*models.AvailabilityTemplate, error)
	toggleFn func(ctx context.Context, id uint, active bool) error
	deleteFn func(ctx context.Context, id uint) error
}

func (m *mockAvailabilityService) GetAvailableSlots(ctx context.Context, date string) ([]string, error) {
	return m.slotsFn(ctx, date)
}
func (m *mockAvailabilityService) ListTemplates(ctx context.Context) ([]models.AvailabilityTemplate, error) {
	return m.listFn(ctx)
}
func (m *mockAvailabilityService) AddTemplate(ctx context.Context, day int, start string, duration int) (*models.AvailabilityTemplate, error) {
	return m.addFn(ctx, day, start, duration)
}
func (m *mockAvailabilityService) ToggleTemplate(ctx context.Context, id uint, active bool) error {
	return m.toggleFn(ctx, id, active)
}
func (m *mockAvailabilityService) DeleteTemplate(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}
func (m *mockAvailabilityService) EnsureDefaultTemplates(ctx context.Context) (bool, error) {
	return false, nil
}

// --- Mock ReservationService ---

type mockReservationService struct {
	createFn func(ctx context.Context, in service.CreateReservationInput) (*models.Reservation, error)
	getFn    func(ctx context.Context, id uint) (*models.Reservation, error)
	listFn   func(ctx context.Context) ([]models.Reservation, error)
	updateFn func(ctx context.Context, id uint, status *models.ReservationStatus, notes *string) (*models.Reservation, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (m *mockReservationService) CreateReservation(ctx context.Context, in service.CreateReservationInput) (*models.Reservation, error) {
	return m.createFn(ctx, in)
}
func (m *mockReservationService) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return m.getFn(ctx, id)
}
func (m *mockReservationService) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	return m.listFn(ctx)
}
func (m *mockReservationService) Confirm(ctx context.Context, id uint) (*models.Reservation, error) {
	s := models.StatusConfirmed
	return m.updateFn(ctx, id, &s, nil)
}
func (m *mockReservationService) Cancel(ctx context.Context, id uint, notes *string) (*models.Reservation, error) {
	s := models.StatusCancelled
	return m.updateFn(ctx, id, &s, notes)
}
func (m *mockReservationService) UpdateNotes(ctx context.Context, id uint, notes string) (*models.Reservation, error) {
	return m.updateFn(ctx, id, nil, &notes)
}
func (m *mockReservationService) UpdateReservation(ctx context.Context, id uint, status *models.ReservationStatus, notes *string) (*models.Reservation, error) {
	return m.updateFn(ctx, id, status, notes)
}
func (m *mockReservationService) DeleteReservation(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// --- Mock AuthService ---

type mockAuthService struct {
	registerFn func(ctx context.Context, name, email, password string) (*models.User, string, error)
	loginFn    func(ctx context.Context, email, password string) (*models.User, string, error)
	getUserFn  func(ctx context.Context, id string) (*models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	return m.registerFn(ctx, name, email, password)
}
func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	return m.loginFn(ctx, email, password)
}
func (m *mockAuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return m.getUserFn(ctx, id)
}
func (m *mockAuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	return nil
}
