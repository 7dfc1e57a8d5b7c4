package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/showgrid/theatre-api/internal/domain"
)

type PostgresScreenRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScreenRepository(db *pgxpool.Pool) *PostgresScreenRepository {
	return &PostgresScreenRepository{
		db: db,
	}
}

func (p *PostgresScreenRepository) GetByTheatre(ctx context.Context, theatreID int) ([]domain.Screen, error) {
	query := `
		SELECT id, theatre_id, screen_no, total_seats, is_active
		FROM screens
		WHERE theatre_id = $1 AND is_active
		ORDER BY screen_no
	`

	rows, err := p.db.Query(ctx, query, theatreID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screens := make([]domain.Screen, 0)

	for rows.Next() {
		var screen domain.Screen

		err := rows.Scan(
			&screen.ID,
			&screen.TheatreID,
			&screen.ScreenNo,
			&screen.TotalSeats,
			&screen.IsActive,
		)
		if err != nil {
			return nil, err
		}

		screens = append(screens, screen)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return screens, nil
}

func (p *PostgresScreenRepository) GetById(ctx context.Context, id int) (*domain.Screen, error) {
	query := `
		SELECT id, theatre_id, screen_no, total_seats, is_active
		FROM screens
		WHERE id = $1 AND is_active
	`

	var screen domain.Screen

	err := p.db.QueryRow(ctx, query, id).Scan(
		&screen.ID,
		&screen.TheatreID,
		&screen.ScreenNo,
		&screen.TotalSeats,
		&screen.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &screen, nil
}

func (p *PostgresScreenRepository) Create(ctx context.Context, screen *domain.Screen) error {
	query := `
		INSERT INTO screens (theatre_id, screen_no, total_seats)
		VALUES ($1, $2, $3)
		RETURNING id, is_active
	`

	err := p.db.QueryRow(
		ctx,
		query,
		screen.TheatreID,
		screen.ScreenNo,
		screen.TotalSeats).Scan(&screen.ID, &screen.IsActive)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrEditConflict
		}

		return err
	}

	return nil
}

func (p *PostgresScreenRepository) Update(ctx context.Context, screen *domain.Screen) error {
	query := `
		UPDATE screens
		SET screen_no = $1, total_seats = $2
		WHERE id = $3 AND is_active
	`

	tag, err := p.db.Exec(ctx, query, screen.ScreenNo, screen.TotalSeats, screen.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrEditConflict
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresScreenRepository) Deactivate(ctx context.Context, id int) error {
	query := `
		UPDATE screens
		SET is_active = FALSE
		WHERE id = $1 AND is_active
	`

	tag, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
