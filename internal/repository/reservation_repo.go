package repository

import (
	"context"

	"github.com/Eursukkul/session-booking/internal/models"
	"gorm.io/gorm"
)

// ReservationRepository methods that take a tx run on it when non-nil and on
// the repository's own handle otherwise.
type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error)
	FindAll(ctx context.Context) ([]models.Reservation, error)
	FindBookedSlots(ctx context.Context, tx *gorm.DB, date string) ([]string, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, from, to models.ReservationStatus, adminNotes *string) (bool, error)
	UpdateNotes(ctx context.Context, tx *gorm.DB, id uint, adminNotes string) error
	Delete(ctx context.Context, id uint) error
	GetDB() *gorm.DB
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *reservationRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// Create inserts the row as-is. A clash on the active-slot index is reported
// as ErrSlotTaken.
func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	if err := r.conn(ctx, tx).Create(reservation).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return err
	}
	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.conn(ctx, tx).First(&reservation, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &reservation, nil
}

func (r *reservationRepository) FindAll(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Order("date DESC, time_slot ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindBookedSlots returns the time slots held by non-cancelled reservations
// on date.
func (r *reservationRepository) FindBookedSlots(ctx context.Context, tx *gorm.DB, date string) ([]string, error) {
	var slots []string
	err := r.conn(ctx, tx).
		Model(&models.Reservation{}).
		Where("date = ? AND status <> ?", date, models.StatusCancelled).
		Order("time_slot ASC").
		Pluck("time_slot", &slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// UpdateStatus moves the reservation from one status to another only if it is
// still in from. It reports false when the row was not in the expected state.
func (r *reservationRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, from, to models.ReservationStatus, adminNotes *string) (bool, error) {
	updates := map[string]any{"status": to}
	if adminNotes != nil {
		updates["admin_notes"] = *adminNotes
	}
	result := r.conn(ctx, tx).
		Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return false, ErrSlotTaken
		}
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *reservationRepository) UpdateNotes(ctx context.Context, tx *gorm.DB, id uint, adminNotes string) error {
	result := r.conn(ctx, tx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("admin_notes", adminNotes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete is a hard delete and idempotent.
func (r *reservationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Reservation{}, id).Error
}
