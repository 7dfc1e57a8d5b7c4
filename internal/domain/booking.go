package domain

import (
	"context"
	"slices"
	"time"
)

// Booking is a user's claim on a set of seats for one show. Across all
// active bookings of a show, seat numbers are pairwise disjoint; cancelling
// a booking (IsActive=false) releases its seats.
type Booking struct {
	ID            int
	UserID        int
	ShowID        int
	BookingType   string
	PaymentStatus string
	CreatedAt     time.Time
	IsActive      bool
	Seats         []int
}

// BookingSummary is the listing projection.
type BookingSummary struct {
	ID            int
	UserID        int
	BookingType   string
	PaymentStatus string
	CreatedAt     time.Time
	Seats         []int
	MovieName     string
	UserName      string
}

// NormalizeSeats deduplicates and sorts a requested seat list. The engine
// operates on normalized seat sets only.
func NormalizeSeats(seats []int) []int {
	normalized := slices.Clone(seats)
	slices.Sort(normalized)

	return slices.Compact(normalized)
}

type BookingRepository interface {
	// Reserve atomically checks the requested seats against all active
	// bookings for the show and either creates the booking with every seat or
	// creates nothing. Overlaps yield a *SeatConflictError listing the seats
	// already taken. The booking's ID and CreatedAt are populated on success.
	Reserve(ctx context.Context, booking *Booking) error

	// Deactivate soft-cancels a booking, releasing its seats. It returns
	// ErrRecordNotFound when the booking is absent or already cancelled.
	Deactivate(ctx context.Context, bookingID int) error

	// GetActiveSeatsByShow returns the union of seat numbers across all
	// active bookings for the show, sorted ascending.
	GetActiveSeatsByShow(ctx context.Context, showID int) ([]int, error)

	GetAll(ctx context.Context, pagination Pagination) ([]BookingSummary, *Metadata, error)
	GetById(ctx context.Context, id int) (*BookingSummary, error)
}
