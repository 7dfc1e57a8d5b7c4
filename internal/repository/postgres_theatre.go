package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/showgrid/theatre-api/internal/domain"
)

type PostgresTheatreRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTheatreRepository(db *pgxpool.Pool) *PostgresTheatreRepository {
	return &PostgresTheatreRepository{
		db: db,
	}
}

func (p *PostgresTheatreRepository) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.Theatre, *domain.Metadata, error) {

	query := `
		SELECT COUNT(*) OVER(), id, name, city, address, user_id, is_active
		FROM theatres
		WHERE is_active AND (city ILIKE '%' || $1 || '%' OR $1 = '')
		ORDER BY name, id
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, pagination.Term, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	theatres := make([]domain.Theatre, 0)
	totalRecords := 0

	for rows.Next() {
		var theatre domain.Theatre

		err := rows.Scan(
			&totalRecords,
			&theatre.ID,
			&theatre.Name,
			&theatre.City,
			&theatre.Address,
			&theatre.UserID,
			&theatre.IsActive,
		)
		if err != nil {
			return nil, nil, err
		}

		theatres = append(theatres, theatre)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return theatres, metadata, nil
}

func (p *PostgresTheatreRepository) GetById(ctx context.Context, id int) (*domain.Theatre, error) {
	query := `
		SELECT id, name, city, address, user_id, is_active
		FROM theatres
		WHERE id = $1 AND is_active
	`

	var theatre domain.Theatre

	err := p.db.QueryRow(ctx, query, id).Scan(
		&theatre.ID,
		&theatre.Name,
		&theatre.City,
		&theatre.Address,
		&theatre.UserID,
		&theatre.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &theatre, nil
}

func (p *PostgresTheatreRepository) Create(ctx context.Context, theatre *domain.Theatre) error {
	query := `
		INSERT INTO theatres (name, city, address, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active
	`

	return p.db.QueryRow(
		ctx,
		query,
		theatre.Name,
		theatre.City,
		theatre.Address,
		theatre.UserID).Scan(&theatre.ID, &theatre.IsActive)
}

func (p *PostgresTheatreRepository) Update(ctx context.Context, theatre *domain.Theatre) error {
	query := `
		UPDATE theatres
		SET name = $1, city = $2, address = $3
		WHERE id = $4 AND is_active
	`

	tag, err := p.db.Exec(ctx, query, theatre.Name, theatre.City, theatre.Address, theatre.ID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresTheatreRepository) Deactivate(ctx context.Context, id int) error {
	query := `
		UPDATE theatres
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
