package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Eursukkul/session-booking/internal/models"
	"github.com/Eursukkul/session-booking/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("github.com/Eursukkul/session-booking/internal/service")

var defaultSlotTimes = []string{"09:00", "09:45", "10:30", "11:15", "14:00", "14:45", "15:30", "16:15"}

// DefaultTemplates is the Monday to Friday schedule seeded on first use.
func DefaultTemplates() []models.AvailabilityTemplate {
	templates := make([]models.AvailabilityTemplate, 0, 5*len(defaultSlotTimes))
	for day := time.Monday; day <= time.Friday; day++ {
		for _, start := range defaultSlotTimes {
			templates = append(templates, models.AvailabilityTemplate{
				DayOfWeek:       int(day),
				StartTime:       start,
				DurationMinutes: models.DefaultDurationMinutes,
				IsActive:        true,
			})
		}
	}
	return templates
}

type AvailabilityService interface {
	GetAvailableSlots(ctx context.Context, date string) ([]string, error)
	ListTemplates(ctx context.Context) ([]models.AvailabilityTemplate, error)
	AddTemplate(ctx context.Context, dayOfWeek int, startTime string, durationMinutes int) (*models.AvailabilityTemplate, error)
	ToggleTemplate(ctx context.Context, id uint, active bool) error
	DeleteTemplate(ctx context.Context, id uint) error
	EnsureDefaultTemplates(ctx context.Context) (bool, error)
}

type availabilityService struct {
	templateRepo    repository.TemplateRepository
	reservationRepo repository.ReservationRepository
	loc             *time.Location
	log             *zap.Logger
}

func NewAvailabilityService(templateRepo repository.TemplateRepository, reservationRepo repository.ReservationRepository, loc *time.Location, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		templateRepo:    templateRepo,
		reservationRepo: reservationRepo,
		loc:             loc,
		log:             log,
	}
}

func (s *availabilityService) GetAvailableSlots(ctx context.Context, date string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "availability.GetAvailableSlots", trace.WithAttributes(attribute.String("booking.date", date)))
	defer span.End()

	slots, err := resolveSlots(ctx, nil, s.templateRepo, s.reservationRepo, s.loc, date)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("booking.slots", len(slots)))
	return slots, nil
}

// resolveSlots computes the open slots for date: the active templates of its
// weekday minus the slots held by non-cancelled reservations. It has no
// notion of the current time.
func resolveSlots(ctx context.Context, tx *gorm.DB, templates repository.TemplateRepository, reservations repository.ReservationRepository, loc *time.Location, date string) ([]string, error) {
	day, err := models.ParseDate(date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	candidates, err := templates.FindActiveByDay(ctx, tx, int(day.Weekday()))
	if err != nil {
		return nil, storageErr("list active templates", err)
	}
	booked, err := reservations.FindBookedSlots(ctx, tx, date)
	if err != nil {
		return nil, storageErr("list booked slots", err)
	}

	taken := make(map[string]struct{}, len(booked))
	for _, slot := range booked {
		taken[slot] = struct{}{}
	}

	slots := make([]string, 0, len(candidates))
	for _, t := range candidates {
		if _, ok := taken[t.StartTime]; ok {
			continue
		}
		// duplicate templates yield the slot once
		taken[t.StartTime] = struct{}{}
		slots = append(slots, t.StartTime)
	}
	return slots, nil
}

func (s *availabilityService) ListTemplates(ctx context.Context) ([]models.AvailabilityTemplate, error) {
	templates, err := s.templateRepo.FindAll(ctx)
	if err != nil {
		return nil, storageErr("list templates", err)
	}
	return templates, nil
}

// AddTemplate creates an active template. Duplicate (day, start) pairs are
// accepted.
func (s *availabilityService) AddTemplate(ctx context.Context, dayOfWeek int, startTime string, durationMinutes int) (*models.AvailabilityTemplate, error) {
	if dayOfWeek < int(time.Sunday) || dayOfWeek > int(time.Saturday) {
		return nil, fmt.Errorf("%w: day_of_week must be between 0 and 6", ErrValidation)
	}
	if !models.IsTimeSlot(startTime) {
		return nil, fmt.Errorf("%w: start_time must be HH:MM", ErrValidation)
	}
	if durationMinutes == 0 {
		durationMinutes = models.DefaultDurationMinutes
	}
	if durationMinutes < 0 {
		return nil, fmt.Errorf("%w: duration_minutes must be positive", ErrValidation)
	}

	template := &models.AvailabilityTemplate{
		DayOfWeek:       dayOfWeek,
		StartTime:       startTime,
		DurationMinutes: durationMinutes,
		IsActive:        true,
	}
	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, storageErr("create template", err)
	}
	s.log.Info("availability template added",
		zap.Uint("template_id", template.ID),
		zap.Int("day_of_week", dayOfWeek),
		zap.String("start_time", startTime),
	)
	return template, nil
}

func (s *availabilityService) ToggleTemplate(ctx context.Context, id uint, active bool) error {
	if err := s.templateRepo.SetActive(ctx, id, active); err != nil {
		return storageErr("toggle template", err)
	}
	return nil
}

func (s *availabilityService) DeleteTemplate(ctx context.Context, id uint) error {
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		return storageErr("delete template", err)
	}
	return nil
}

func (s *availabilityService) EnsureDefaultTemplates(ctx context.Context) (bool, error) {
	seeded, err := s.templateRepo.SeedIfEmpty(ctx, DefaultTemplates())
	if err != nil {
		return false, storageErr("seed default templates", err)
	}
	if seeded {
		s.log.Info("seeded default weekly availability", zap.Int("templates", 5*len(defaultSlotTimes)))
	}
	return seeded, nil
}
