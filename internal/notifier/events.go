package notifier

import "github.com/Eursukkul/session-booking/internal/models"

const (
	RKBookingCreated   = "booking.created"
	RKBookingConfirmed = "booking.confirmed"
	RKBookingCancelled = "booking.cancelled"
)

// BookingEvent carries enough of the reservation to write an email.
type BookingEvent struct {
	ReservationID uint   `json:"reservation_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ServiceType   string `json:"service_type"`
	Date          string `json:"date"`
	TimeSlot      string `json:"time_slot"`
	Status        string `json:"status"`
	AdminNotes    string `json:"admin_notes,omitempty"`
}

func NewBookingEvent(r *models.Reservation) BookingEvent {
	return BookingEvent{
		ReservationID: r.ID,
		Name:          r.Name,
		Email:         r.Email,
		ServiceType:   string(r.ServiceType),
		Date:          r.Date,
		TimeSlot:      r.TimeSlot,
		Status:        string(r.Status),
		AdminNotes:    r.AdminNotes,
	}
}

// RoutingKeyForStatus maps a status change to its event key. Pending has no
// event of its own.
func RoutingKeyForStatus(status models.ReservationStatus) (string, bool) {
	switch status {
	case models.StatusConfirmed:
		return RKBookingConfirmed, true
	case models.StatusCancelled:
		return RKBookingCancelled, true
	}
	return "", false
}
