package domain

import "context"

// Screen bounds seat numbering for every show scheduled on it: valid seat
// numbers are 1..TotalSeats.
type Screen struct {
	ID         int
	TheatreID  int
	ScreenNo   int
	TotalSeats int
	IsActive   bool
}

type ScreenRepository interface {
	GetByTheatre(ctx context.Context, theatreID int) ([]Screen, error)
	GetById(ctx context.Context, id int) (*Screen, error)
	Create(ctx context.Context, screen *Screen) error
	Update(ctx context.Context, screen *Screen) error
	Deactivate(ctx context.Context, id int) error
}
