package domain

import (
	"context"
	"time"
)

// Showtime schedules a movie on a screen at a specific date and time.
// StartTime is a wall-clock time in "15:04:05" form; Date carries the date
// component only. At most one active showtime may exist per
// (screen, date, time) triple.
type Showtime struct {
	ID       int
	MovieID  int
	ScreenID int
	Date     time.Time
	Time     string
	Price    float64
	IsActive bool
}

// ShowtimeDetail is the listing projection for a screen's schedule.
type ShowtimeDetail struct {
	Showtime
	MovieName     string
	BookingsCount int
}

// ShowtimeCapacity joins a showtime with its screen's seat capacity. The
// reservation engine validates requested seat numbers against TotalSeats
// before entering the atomic section.
type ShowtimeCapacity struct {
	Showtime
	ScreenNo   int
	TotalSeats int
}

// SeatMap partitions the currently booked seats of a show between the
// requesting user and everyone else. It is produced from a single consistent
// snapshot: a seat never appears in both lists.
type SeatMap struct {
	ShowID      int
	Date        time.Time
	Time        string
	Price       float64
	ScreenNo    int
	Theatre     string
	TotalSeats  int
	MySeats     []int
	OthersSeats []int
}

type ShowtimeRepository interface {
	// GetActiveById returns the showtime together with its screen capacity,
	// or ErrRecordNotFound when the showtime is missing, inactive, or
	// past-dated.
	GetActiveById(ctx context.Context, id int) (*ShowtimeCapacity, error)

	GetByScreen(ctx context.Context, screenID int) ([]ShowtimeDetail, error)

	// Create inserts a new showtime. When an inactive showtime already exists
	// for the same (screen, date, time) triple it is reactivated in place and
	// reactivated reports true. An active duplicate yields
	// ErrDuplicateShowtime.
	Create(ctx context.Context, showtime *Showtime) (reactivated bool, err error)

	Update(ctx context.Context, showtime *Showtime) error

	// DeactivateByIds soft-deletes the given showtimes and returns how many
	// active rows were actually flipped.
	DeactivateByIds(ctx context.Context, ids []int) (int, error)

	// DeactivatePast expires every active showtime whose date is before
	// today. Committed bookings against expired shows are left untouched.
	DeactivatePast(ctx context.Context) (int64, error)

	// GetSeatMap reads the show and the seat ownership partition for the
	// given user in one consistent snapshot.
	GetSeatMap(ctx context.Context, showID, userID int) (*SeatMap, error)
}
