package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrRecordNotFound      = errors.New("record not found")
	ErrEditConflict        = errors.New("edit conflict")
	ErrDuplicateShowtime   = errors.New("an active showtime already exists for this screen at the same date and time")
	ErrTransactionConflict = errors.New("transaction aborted due to concurrent updates")
)

// SeatConflictError reports the exact seats that were already held by another
// active booking when a reservation attempt ran. It is a terminal outcome:
// the reservation engine never retries it.
type SeatConflictError struct {
	Seats []int
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats already booked: %v", e.Seats)
}
