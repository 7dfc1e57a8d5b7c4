package domain

import "context"

type Theatre struct {
	ID       int
	Name     string
	City     string
	Address  string
	UserID   int
	IsActive bool
}

type TheatreRepository interface {
	GetAll(ctx context.Context, pagination Pagination) ([]Theatre, *Metadata, error)
	GetById(ctx context.Context, id int) (*Theatre, error)
	Create(ctx context.Context, theatre *Theatre) error
	Update(ctx context.Context, theatre *Theatre) error
	Deactivate(ctx context.Context, id int) error
}
