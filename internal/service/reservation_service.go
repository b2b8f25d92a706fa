package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Eursukkul/session-booking/internal/models"
	"github.com/Eursukkul/session-booking/internal/notifier"
	"github.com/Eursukkul/session-booking/internal/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	notifyTimeout         = 10 * time.Second
	maxTransitionAttempts = 3
)

type ReservationService interface {
	CreateReservation(ctx context.Context, in CreateReservationInput) (*models.Reservation, error)
	GetReservation(ctx context.Context, id uint) (*models.Reservation, error)
	ListReservations(ctx context.Context) ([]models.Reservation, error)
	Confirm(ctx context.Context, id uint) (*models.Reservation, error)
	Cancel(ctx context.Context, id uint, adminNotes *string) (*models.Reservation, error)
	UpdateNotes(ctx context.Context, id uint, adminNotes string) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, id uint, status *models.ReservationStatus, adminNotes *string) (*models.Reservation, error)
	DeleteReservation(ctx context.Context, id uint) error
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	templateRepo    repository.TemplateRepository
	notifier        notifier.Notifier
	loc             *time.Location
	log             *zap.Logger
}

// NewReservationService wires the writer and lifecycle manager. n may be nil,
// in which case no notifications are sent.
func NewReservationService(reservationRepo repository.ReservationRepository, templateRepo repository.TemplateRepository, n notifier.Notifier, loc *time.Location, log *zap.Logger) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		templateRepo:    templateRepo,
		notifier:        n,
		loc:             loc,
		log:             log,
	}
}

// CreateReservation re-checks availability and inserts a pending reservation
// in one transaction. If another request wins the slot between the check and
// the insert, the active-slot index rejects this insert and the caller gets
// ErrSlotUnavailable.
func (s *reservationService) CreateReservation(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	ctx, span := tracer.Start(ctx, "reservation.Create", trace.WithAttributes(
		attribute.String("booking.date", in.Date),
		attribute.String("booking.time_slot", in.TimeSlot),
	))
	defer span.End()

	var result *models.Reservation

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Resolve availability inside the transaction
		slots, err := resolveSlots(ctx, tx, s.templateRepo, s.reservationRepo, s.loc, in.Date)
		if err != nil {
			return err
		}
		if !contains(slots, in.TimeSlot) {
			return ErrSlotUnavailable
		}

		// 2. Insert; the partial unique index is the final arbiter
		reservation := &models.Reservation{
			Name:        strings.TrimSpace(in.Name),
			Email:       strings.TrimSpace(in.Email),
			Phone:       strings.TrimSpace(in.Phone),
			ServiceType: in.ServiceType,
			Date:        in.Date,
			TimeSlot:    in.TimeSlot,
			Message:     in.Message,
			Status:      models.StatusPending,
		}
		if err := s.reservationRepo.Create(ctx, tx, reservation); err != nil {
			if errors.Is(err, repository.ErrSlotTaken) {
				return ErrSlotUnavailable
			}
			return storageErr("insert reservation", err)
		}
		result = reservation
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotUnavailable) {
			s.log.Info("booking rejected, slot unavailable",
				zap.String("date", in.Date),
				zap.String("time_slot", in.TimeSlot),
			)
			span.SetAttributes(attribute.Bool("booking.conflict", true))
			return nil, err
		}
		var se *StorageError
		if !errors.As(err, &se) && !errors.Is(err, ErrValidation) {
			err = storageErr("create reservation", err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.log.Info("reservation created",
		zap.Uint("reservation_id", result.ID),
		zap.String("date", result.Date),
		zap.String("time_slot", result.TimeSlot),
	)
	s.dispatch(ctx, notifier.RKBookingCreated, result)
	return result, nil
}

func (s *reservationService) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, storageErr("get reservation", err)
	}
	return reservation, nil
}

func (s *reservationService) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	reservations, err := s.reservationRepo.FindAll(ctx)
	if err != nil {
		return nil, storageErr("list reservations", err)
	}
	return reservations, nil
}

func (s *reservationService) Confirm(ctx context.Context, id uint) (*models.Reservation, error) {
	status := models.StatusConfirmed
	return s.UpdateReservation(ctx, id, &status, nil)
}

func (s *reservationService) Cancel(ctx context.Context, id uint, adminNotes *string) (*models.Reservation, error) {
	status := models.StatusCancelled
	return s.UpdateReservation(ctx, id, &status, adminNotes)
}

func (s *reservationService) UpdateNotes(ctx context.Context, id uint, adminNotes string) (*models.Reservation, error) {
	return s.UpdateReservation(ctx, id, nil, &adminNotes)
}

// UpdateReservation applies an optional status change and optional admin
// notes. Requesting the current status is a no-op for the status; any other
// change must follow the transition table.
func (s *reservationService) UpdateReservation(ctx context.Context, id uint, status *models.ReservationStatus, adminNotes *string) (*models.Reservation, error) {
	if status != nil && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *status)
	}

	var (
		result  *models.Reservation
		changed bool
	)

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
			current, err := s.reservationRepo.FindByID(ctx, tx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return ErrReservationNotFound
				}
				return storageErr("get reservation", err)
			}

			if status == nil || *status == current.Status {
				if adminNotes != nil {
					if err := s.reservationRepo.UpdateNotes(ctx, tx, id, *adminNotes); err != nil {
						return storageErr("update admin notes", err)
					}
					current.AdminNotes = *adminNotes
				}
				result = current
				return nil
			}

			if !current.Status.CanTransitionTo(*status) {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, *status)
			}

			ok, err := s.reservationRepo.UpdateStatus(ctx, tx, id, current.Status, *status, adminNotes)
			if err != nil {
				if errors.Is(err, repository.ErrSlotTaken) {
					return ErrSlotUnavailable
				}
				return storageErr("update reservation status", err)
			}
			if !ok {
				// lost a race with another admin; re-read and re-validate
				continue
			}

			current.Status = *status
			if adminNotes != nil {
				current.AdminNotes = *adminNotes
			}
			result = current
			changed = true
			return nil
		}
		return ErrStaleReservation
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.log.Info("reservation status changed",
			zap.Uint("reservation_id", id),
			zap.String("status", string(result.Status)),
		)
		if key, ok := notifier.RoutingKeyForStatus(result.Status); ok {
			s.dispatch(ctx, key, result)
		}
	}
	return result, nil
}

func (s *reservationService) DeleteReservation(ctx context.Context, id uint) error {
	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		return storageErr("delete reservation", err)
	}
	return nil
}

// dispatch sends a best-effort notification without holding up the caller.
// Failures are logged and never reach the booking result.
func (s *reservationService) dispatch(ctx context.Context, routingKey string, r *models.Reservation) {
	if s.notifier == nil {
		return
	}
	ev := notifier.NewBookingEvent(r)
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(ctx, routingKey, ev); err != nil {
			s.log.Warn("booking notification failed",
				zap.Uint("reservation_id", ev.ReservationID),
				zap.String("routing_key", routingKey),
				zap.Error(err),
			)
		}
	}()
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
