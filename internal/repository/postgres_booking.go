package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/showgrid/theatre-api/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Reserve runs the check-then-write reservation protocol as one serializable
// transaction: read the seats held by active bookings of the show, abort with
// a SeatConflictError on overlap, otherwise insert the booking row and its
// seats. Serialization aborts caused by concurrent reservations on the same
// show are retried by the transaction wrapper; a genuine overlap is terminal.
func (p *PostgresBookingRepository) Reserve(ctx context.Context, booking *domain.Booking) error {
	return runInSerializableTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT DISTINCT sb.seat_no
			FROM seats_booked sb
			JOIN bookings b ON b.id = sb.booking_id
			WHERE b.show_id = $1 AND b.is_active
		`

		rows, err := tx.Query(ctx, query, booking.ShowID)
		if err != nil {
			return err
		}

		taken := make(map[int]bool)

		for rows.Next() {
			var seatNo int

			if err := rows.Scan(&seatNo); err != nil {
				rows.Close()
				return err
			}

			taken[seatNo] = true
		}
		rows.Close()

		if err := rows.Err(); err != nil {
			return err
		}

		var conflicts []int
		for _, seatNo := range booking.Seats {
			if taken[seatNo] {
				conflicts = append(conflicts, seatNo)
			}
		}

		if len(conflicts) > 0 {
			return &domain.SeatConflictError{Seats: conflicts}
		}

		query = `
			INSERT INTO bookings (user_id, show_id, booking_type, payment_status)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, is_active
		`

		err = tx.QueryRow(
			ctx,
			query,
			booking.UserID,
			booking.ShowID,
			booking.BookingType,
			booking.PaymentStatus).Scan(&booking.ID, &booking.CreatedAt, &booking.IsActive)

		if err != nil {
			return err
		}

		seatRows := make([][]any, 0, len(booking.Seats))
		for _, seatNo := range booking.Seats {
			seatRows = append(seatRows, []any{booking.ID, seatNo})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"seats_booked"},
			[]string{"booking_id", "seat_no"},
			pgx.CopyFromRows(seatRows),
		)

		return err
	})
}

func (p *PostgresBookingRepository) Deactivate(ctx context.Context, bookingID int) error {
	query := `
		UPDATE bookings
		SET is_active = FALSE
		WHERE id = $1 AND is_active
	`

	tag, err := p.db.Exec(ctx, query, bookingID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresBookingRepository) GetActiveSeatsByShow(ctx context.Context, showID int) ([]int, error) {
	query := `
		SELECT DISTINCT sb.seat_no
		FROM seats_booked sb
		JOIN bookings b ON b.id = sb.booking_id
		WHERE b.show_id = $1 AND b.is_active
		ORDER BY sb.seat_no
	`

	rows, err := p.db.Query(ctx, query, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]int, 0)

	for rows.Next() {
		var seatNo int

		if err := rows.Scan(&seatNo); err != nil {
			return nil, err
		}

		seats = append(seats, seatNo)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresBookingRepository) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id,
			b.user_id,
			b.booking_type,
			b.payment_status,
			b.created_at,
			m.name,
			u.name,
			ARRAY(SELECT sb.seat_no FROM seats_booked sb WHERE sb.booking_id = b.id ORDER BY sb.seat_no)
		FROM bookings b
		JOIN showtimes s ON b.show_id = s.id
		JOIN movies m ON s.movie_id = m.id
		JOIN users u ON b.user_id = u.id
		WHERE b.is_active
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings := make([]domain.BookingSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var booking domain.BookingSummary
		var seats []int32

		err := rows.Scan(
			&totalRecords,
			&booking.ID,
			&booking.UserID,
			&booking.BookingType,
			&booking.PaymentStatus,
			&booking.CreatedAt,
			&booking.MovieName,
			&booking.UserName,
			&seats,
		)
		if err != nil {
			return nil, nil, err
		}

		booking.Seats = toIntSeats(seats)
		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return bookings, metadata, nil
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, id int) (*domain.BookingSummary, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			b.booking_type,
			b.payment_status,
			b.created_at,
			m.name,
			u.name,
			ARRAY(SELECT sb.seat_no FROM seats_booked sb WHERE sb.booking_id = b.id ORDER BY sb.seat_no)
		FROM bookings b
		JOIN showtimes s ON b.show_id = s.id
		JOIN movies m ON s.movie_id = m.id
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1 AND b.is_active
	`

	var booking domain.BookingSummary
	var seats []int32

	err := p.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.BookingType,
		&booking.PaymentStatus,
		&booking.CreatedAt,
		&booking.MovieName,
		&booking.UserName,
		&seats,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	booking.Seats = toIntSeats(seats)

	return &booking, nil
}

func toIntSeats(seats []int32) []int {
	result := make([]int, len(seats))
	for i, seatNo := range seats {
		result[i] = int(seatNo)
	}

	return result
}
