package repository

import (
	"context"

	"github.com/Eursukkul/session-booking/internal/models"
	"gorm.io/gorm"
)

type TemplateRepository interface {
	FindAll(ctx context.Context) ([]models.AvailabilityTemplate, error)
	FindActiveByDay(ctx context.Context, tx *gorm.DB, dayOfWeek int) ([]models.AvailabilityTemplate, error)
	Create(ctx context.Context, template *models.AvailabilityTemplate) error
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
	SeedIfEmpty(ctx context.Context, templates []models.AvailabilityTemplate) (bool, error)
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) FindAll(ctx context.Context) ([]models.AvailabilityTemplate, error) {
	var templates []models.AvailabilityTemplate
	if err := r.db.WithContext(ctx).
		Order("day_of_week ASC, start_time ASC, id ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepository) FindActiveByDay(ctx context.Context, tx *gorm.DB, dayOfWeek int) ([]models.AvailabilityTemplate, error) {
	if tx == nil {
		tx = r.db
	}
	var templates []models.AvailabilityTemplate
	if err := tx.WithContext(ctx).
		Where("day_of_week = ? AND is_active = ?", dayOfWeek, true).
		Order("start_time ASC, id ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepository) Create(ctx context.Context, template *models.AvailabilityTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

// SetActive is a no-op for unknown ids.
func (r *templateRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.AvailabilityTemplate{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

// Delete is a hard delete and a no-op for unknown ids. Existing reservations
// keep their own date and slot, so they are unaffected.
func (r *templateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.AvailabilityTemplate{}, id).Error
}

// SeedIfEmpty inserts templates only when the table has no rows at all and
// reports whether it did.
func (r *templateRepository) SeedIfEmpty(ctx context.Context, templates []models.AvailabilityTemplate) (bool, error) {
	seeded := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.AvailabilityTemplate{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if len(templates) == 0 {
			return nil
		}
		if err := tx.Create(&templates).Error; err != nil {
			return err
		}
		seeded = true
		return nil
	})
	return seeded, err
}
