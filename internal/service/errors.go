package service

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrSlotUnavailable     = errors.New("this slot is no longer available, please choose another")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrStaleReservation    = errors.New("reservation was modified concurrently, please retry")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("email is already registered")
	ErrUserNotFound        = errors.New("user not found")
)

// StorageError wraps a failure of the underlying database. It is never
// retried here.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
