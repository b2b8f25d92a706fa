package models

import "time"

const DefaultDurationMinutes = 45

// AvailabilityTemplate is a recurring weekly bookable window. DayOfWeek
// follows time.Weekday: 0 is Sunday, 6 is Saturday.
type AvailabilityTemplate struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	DayOfWeek       int       `gorm:"not null;index:idx_template_day_start,priority:1" json:"day_of_week"`
	StartTime       string    `gorm:"type:varchar(5);not null;index:idx_template_day_start,priority:2" json:"start_time"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	IsActive        bool      `gorm:"not null" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
