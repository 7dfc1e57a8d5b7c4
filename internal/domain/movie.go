package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID          int
	Name        string
	Language    string
	Duration    int
	PosterUrl   string
	Description string
	Genres      []Genre
	IsActive    bool
	CreatedAt   time.Time
}

type MovieRepository interface {
	GetAll(ctx context.Context, pagination Pagination) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	Create(ctx context.Context, movie *Movie, genreIDs []int) error
	Update(ctx context.Context, movie *Movie, genreIDs []int) error
	Deactivate(ctx context.Context, id int) error
}
