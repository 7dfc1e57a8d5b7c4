package repository

import (
	"context"
	"errors"
	"slices"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/showgrid/theatre-api/internal/domain"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetActiveById(ctx context.Context, id int) (*domain.ShowtimeCapacity, error) {
	query := `
		SELECT s.id, s.movie_id, s.screen_id, s.show_date, s.show_time::text, s.price, s.is_active,
			sc.screen_no, sc.total_seats
		FROM showtimes s
		JOIN screens sc ON s.screen_id = sc.id
		WHERE s.id = $1 AND s.is_active AND s.show_date >= CURRENT_DATE
	`

	var showtime domain.ShowtimeCapacity

	err := p.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.ScreenID,
		&showtime.Date,
		&showtime.Time,
		&showtime.Price,
		&showtime.IsActive,
		&showtime.ScreenNo,
		&showtime.TotalSeats,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &showtime, nil
}

func (p *PostgresShowtimeRepository) GetByScreen(ctx context.Context, screenID int) ([]domain.ShowtimeDetail, error) {
	query := `
		SELECT s.id, s.movie_id, s.screen_id, s.show_date, s.show_time::text, s.price, s.is_active,
			m.name,
			(SELECT COUNT(*) FROM bookings b WHERE b.show_id = s.id AND b.is_active)
		FROM showtimes s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.screen_id = $1 AND s.is_active AND s.show_date >= CURRENT_DATE
		ORDER BY s.show_date, s.show_time
	`

	rows, err := p.db.Query(ctx, query, screenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtimes := make([]domain.ShowtimeDetail, 0)

	for rows.Next() {
		var showtime domain.ShowtimeDetail

		err := rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.ScreenID,
			&showtime.Date,
			&showtime.Time,
			&showtime.Price,
			&showtime.IsActive,
			&showtime.MovieName,
			&showtime.BookingsCount,
		)
		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}

// Create inserts a showtime, reusing a soft-deleted row for the same
// (screen, date, time) triple when one exists. The row is locked while the
// decision is made so two concurrent creates for the same slot cannot both
// pass the duplicate check; the unique index backs this up.
func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) (bool, error) {
	var reactivated bool

	err := runInTx(ctx, p.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		query := `
			SELECT id, is_active
			FROM showtimes
			WHERE screen_id = $1 AND show_date = $2 AND show_time = $3::time
			FOR UPDATE
		`

		var existingID int
		var active bool

		err := tx.QueryRow(ctx, query, showtime.ScreenID, showtime.Date, showtime.Time).Scan(&existingID, &active)

		switch {
		case err == nil:
			if active {
				return domain.ErrDuplicateShowtime
			}

			query = `
				UPDATE showtimes
				SET movie_id = $1, price = $2, is_active = TRUE
				WHERE id = $3
			`

			if _, err := tx.Exec(ctx, query, showtime.MovieID, showtime.Price, existingID); err != nil {
				return err
			}

			showtime.ID = existingID
			showtime.IsActive = true
			reactivated = true

			return nil

		case errors.Is(err, pgx.ErrNoRows):
			query = `
				INSERT INTO showtimes (movie_id, screen_id, show_date, show_time, price)
				VALUES ($1, $2, $3, $4::time, $5)
				RETURNING id, is_active
			`

			return tx.QueryRow(
				ctx,
				query,
				showtime.MovieID,
				showtime.ScreenID,
				showtime.Date,
				showtime.Time,
				showtime.Price).Scan(&showtime.ID, &showtime.IsActive)

		default:
			return err
		}
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return false, domain.ErrDuplicateShowtime
		}

		return false, err
	}

	return reactivated, nil
}

func (p *PostgresShowtimeRepository) Update(ctx context.Context, showtime *domain.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $1, screen_id = $2, show_date = $3, show_time = $4::time, price = $5
		WHERE id = $6 AND is_active
	`

	tag, err := p.db.Exec(
		ctx,
		query,
		showtime.MovieID,
		showtime.ScreenID,
		showtime.Date,
		showtime.Time,
		showtime.Price,
		showtime.ID,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrDuplicateShowtime
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresShowtimeRepository) DeactivateByIds(ctx context.Context, ids []int) (int, error) {
	query := `
		UPDATE showtimes
		SET is_active = FALSE
		WHERE id = ANY($1) AND is_active
	`

	idParams := make([]int32, len(ids))
	for i, id := range ids {
		idParams[i] = int32(id)
	}

	tag, err := p.db.Exec(ctx, query, idParams)
	if err != nil {
		return 0, err
	}

	return int(tag.RowsAffected()), nil
}

func (p *PostgresShowtimeRepository) DeactivatePast(ctx context.Context) (int64, error) {
	query := `
		UPDATE showtimes
		SET is_active = FALSE
		WHERE show_date < CURRENT_DATE AND is_active
	`

	tag, err := p.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// GetSeatMap reads the show header and the seat ownership partition inside a
// repeatable-read transaction so both reads observe the same snapshot.
func (p *PostgresShowtimeRepository) GetSeatMap(ctx context.Context, showID, userID int) (*domain.SeatMap, error) {
	var seatMap domain.SeatMap

	err := runInTx(ctx, p.db, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		query := `
			SELECT s.id, s.show_date, s.show_time::text, s.price, sc.screen_no, sc.total_seats, t.name
			FROM showtimes s
			JOIN screens sc ON s.screen_id = sc.id
			JOIN theatres t ON sc.theatre_id = t.id
			WHERE s.id = $1 AND s.is_active AND s.show_date >= CURRENT_DATE
		`

		err := tx.QueryRow(ctx, query, showID).Scan(
			&seatMap.ShowID,
			&seatMap.Date,
			&seatMap.Time,
			&seatMap.Price,
			&seatMap.ScreenNo,
			&seatMap.TotalSeats,
			&seatMap.Theatre,
		)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		query = `
			SELECT b.user_id, sb.seat_no
			FROM bookings b
			JOIN seats_booked sb ON sb.booking_id = b.id
			WHERE b.show_id = $1 AND b.is_active
		`

		rows, err := tx.Query(ctx, query, showID)
		if err != nil {
			return err
		}
		defer rows.Close()

		mine := make(map[int]bool)
		others := make(map[int]bool)

		for rows.Next() {
			var ownerID, seatNo int

			if err := rows.Scan(&ownerID, &seatNo); err != nil {
				return err
			}

			if ownerID == userID {
				mine[seatNo] = true
			} else {
				others[seatNo] = true
			}
		}

		if err = rows.Err(); err != nil {
			return err
		}

		seatMap.MySeats = sortedSeats(mine)
		seatMap.OthersSeats = sortedSeats(others)

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &seatMap, nil
}

func sortedSeats(seats map[int]bool) []int {
	result := make([]int, 0, len(seats))
	for seatNo := range seats {
		result = append(result, seatNo)
	}

	slices.Sort(result)

	return result
}
