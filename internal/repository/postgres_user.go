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

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

func (p *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, is_active, version
	`

	err := p.db.QueryRow(
		ctx,
		query,
		user.Name,
		user.Email,
		user.Password.Hash,
		user.Role).Scan(&user.ID, &user.CreatedAt, &user.IsActive, &user.Version)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrUserAlreadyExists
		}

		return err
	}

	return nil
}

func (p *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, is_active, created_at, version
		FROM users
		WHERE email = $1 AND is_active
	`

	return p.getOne(ctx, query, email)
}

func (p *PostgresUserRepository) GetById(ctx context.Context, id int) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, is_active, created_at, version
		FROM users
		WHERE id = $1 AND is_active
	`

	return p.getOne(ctx, query, id)
}

func (p *PostgresUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User

	err := p.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password.Hash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.Version,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &user, nil
}

func (p *PostgresUserRepository) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.UserSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			u.id,
			u.name,
			u.email,
			u.role,
			(SELECT COUNT(*) FROM bookings b WHERE b.user_id = u.id)
		FROM users u
		WHERE u.is_active
		ORDER BY u.id
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	users := make([]domain.UserSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var user domain.UserSummary

		err := rows.Scan(
			&totalRecords,
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Role,
			&user.BookingCount,
		)
		if err != nil {
			return nil, nil, err
		}

		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return users, metadata, nil
}

// Update writes name, email, role and password hash, guarded by the version
// column so concurrent edits surface as ErrEditConflict.
func (p *PostgresUserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, role = $4, version = version + 1
		WHERE id = $5 AND version = $6 AND is_active
		RETURNING version
	`

	err := p.db.QueryRow(
		ctx,
		query,
		user.Name,
		user.Email,
		user.Password.Hash,
		user.Role,
		user.ID,
		user.Version).Scan(&user.Version)

	if err != nil {
		var pgErr *pgconn.PgError

		switch {
		case errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation:
			return domain.ErrUserAlreadyExists
		case errors.Is(err, pgx.ErrNoRows):
			return domain.ErrEditConflict
		default:
			return err
		}
	}

	return nil
}

func (p *PostgresUserRepository) Deactivate(ctx context.Context, id int) error {
	query := `
		UPDATE users
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
