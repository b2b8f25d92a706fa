package models

import "time"

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// cancelled is terminal, so it has no outgoing edges.
var statusTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is an allowed state
// change. Staying in the same state is not a transition and returns false.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, to := range statusTransitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

type ServiceType string

const (
	ServiceDiscoveryCall         ServiceType = "Discovery Call"
	ServiceProjectDemo           ServiceType = "Project Demo"
	ServiceTechnicalConsultation ServiceType = "Technical Consultation"
	ServiceOther                 ServiceType = "Other"
)

var ServiceTypes = []ServiceType{
	ServiceDiscoveryCall,
	ServiceProjectDemo,
	ServiceTechnicalConsultation,
	ServiceOther,
}

func (t ServiceType) Valid() bool {
	for _, st := range ServiceTypes {
		if st == t {
			return true
		}
	}
	return false
}

// Reservation is a booking for one concrete date and time slot. The booker's
// identity is a snapshot taken at booking time.
type Reservation struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"type:varchar(200);not null" json:"name"`
	Email       string            `gorm:"type:varchar(255);not null" json:"email"`
	Phone       string            `gorm:"type:varchar(50)" json:"phone"`
	ServiceType ServiceType       `gorm:"type:varchar(50);not null" json:"service_type"`
	Date        string            `gorm:"type:varchar(10);not null;index" json:"date"`
	TimeSlot    string            `gorm:"type:varchar(5);not null" json:"time_slot"`
	Message     string            `gorm:"type:text" json:"message"`
	Status      ReservationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AdminNotes  string            `gorm:"type:text" json:"admin_notes"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
