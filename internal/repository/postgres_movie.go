package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/showgrid/theatre-api/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.Movie, *domain.Metadata, error) {

	sortColumn := "id"
	switch pagination.SortColumn() {
	case "name", "duration", "created_at":
		sortColumn = pagination.SortColumn()
	}

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) OVER(),
			m.id,
			m.name,
			m.language,
			m.duration,
			m.poster_url,
			m.description,
			m.is_active,
			m.created_at
		FROM movies m
		WHERE m.is_active AND (m.name ILIKE '%%' || $1 || '%%' OR $1 = '')
		ORDER BY m.%s %s, m.id
		LIMIT $2 OFFSET $3`, sortColumn, pagination.SortDirection())

	rows, err := p.db.Query(ctx, query, pagination.Term, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	movies := make([]*domain.Movie, 0)
	totalRecords := 0

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Name,
			&movie.Language,
			&movie.Duration,
			&movie.PosterUrl,
			&movie.Description,
			&movie.IsActive,
			&movie.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	if err = p.attachGenres(ctx, movies); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) attachGenres(ctx context.Context, movies []*domain.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	movieIDs := make([]int32, len(movies))
	byID := make(map[int]*domain.Movie, len(movies))

	for i, movie := range movies {
		movieIDs[i] = int32(movie.ID)
		byID[movie.ID] = movie
	}

	query := `
		SELECT mg.movie_id, g.id, g.name
		FROM movie_genres mg
		JOIN genres g ON mg.genre_id = g.id
		WHERE mg.movie_id = ANY($1)
		ORDER BY g.name
	`

	rows, err := p.db.Query(ctx, query, movieIDs)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var movieID int
		var genre domain.Genre

		if err := rows.Scan(&movieID, &genre.ID, &genre.Name); err != nil {
			return err
		}

		if movie, ok := byID[movieID]; ok {
			movie.Genres = append(movie.Genres, genre)
		}
	}

	return rows.Err()
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, name, language, duration, poster_url, description, is_active, created_at
		FROM movies
		WHERE id = $1 AND is_active
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Name,
		&movie.Language,
		&movie.Duration,
		&movie.PosterUrl,
		&movie.Description,
		&movie.IsActive,
		&movie.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	if err = p.attachGenres(ctx, []*domain.Movie{&movie}); err != nil {
		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie, genreIDs []int) error {
	return runInTx(ctx, p.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		query := `
			INSERT INTO movies (name, language, duration, poster_url, description)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, is_active, created_at
		`

		err := tx.QueryRow(
			ctx,
			query,
			movie.Name,
			movie.Language,
			movie.Duration,
			movie.PosterUrl,
			movie.Description).Scan(&movie.ID, &movie.IsActive, &movie.CreatedAt)

		if err != nil {
			return err
		}

		return replaceMovieGenres(ctx, tx, movie.ID, genreIDs)
	})
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie, genreIDs []int) error {
	return runInTx(ctx, p.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		query := `
			UPDATE movies
			SET name = $1, language = $2, duration = $3, poster_url = $4, description = $5
			WHERE id = $6 AND is_active
		`

		tag, err := tx.Exec(
			ctx,
			query,
			movie.Name,
			movie.Language,
			movie.Duration,
			movie.PosterUrl,
			movie.Description,
			movie.ID,
		)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return replaceMovieGenres(ctx, tx, movie.ID, genreIDs)
	})
}

func replaceMovieGenres(ctx context.Context, tx pgx.Tx, movieID int, genreIDs []int) error {
	if _, err := tx.Exec(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movieID); err != nil {
		return err
	}

	if len(genreIDs) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(genreIDs))
	for _, genreID := range genreIDs {
		rows = append(rows, []any{movieID, genreID})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"movie_genres"},
		[]string{"movie_id", "genre_id"},
		pgx.CopyFromRows(rows),
	)

	return err
}

func (p *PostgresMovieRepository) Deactivate(ctx context.Context, id int) error {
	query := `
		UPDATE movies
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
