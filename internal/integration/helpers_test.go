package integration_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fixture ids for one seeded show, refreshed per test by seedShow.
type showFixture struct {
	UserID   int
	ScreenID int
	ShowID   int
}

func seedUser(t testing.TB, app *TestApp) int {
	t.Helper()

	email := fmt.Sprintf("user-%s@example.com", uuid.NewString())

	var id int
	err := app.DB.QueryRow(context.Background(), `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "Test User", email, []byte("$2a$12$1qAz2wSx3eDc4rFv5tGb5e")).Scan(&id)
	require.NoError(t, err)

	return id
}

// seedShow creates the movie/theatre/screen/showtime chain a booking needs
// and returns the relevant ids. Each call builds an isolated fixture.
func seedShow(t testing.TB, app *TestApp, totalSeats int) showFixture {
	t.Helper()

	ctx := context.Background()
	userID := seedUser(t, app)

	var movieID int
	err := app.DB.QueryRow(ctx, `
		INSERT INTO movies (name, duration) VALUES ($1, 120) RETURNING id
	`, "Test Movie "+uuid.NewString()).Scan(&movieID)
	require.NoError(t, err)

	var theatreID int
	err = app.DB.QueryRow(ctx, `
		INSERT INTO theatres (name, city, user_id) VALUES ($1, 'Istanbul', $2) RETURNING id
	`, "Test Theatre "+uuid.NewString(), userID).Scan(&theatreID)
	require.NoError(t, err)

	var screenID int
	err = app.DB.QueryRow(ctx, `
		INSERT INTO screens (theatre_id, screen_no, total_seats) VALUES ($1, 1, $2) RETURNING id
	`, theatreID, totalSeats).Scan(&screenID)
	require.NoError(t, err)

	showDate := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	var showID int
	err = app.DB.QueryRow(ctx, `
		INSERT INTO showtimes (movie_id, screen_id, show_date, show_time, price)
		VALUES ($1, $2, $3, '20:00:00', 12.50)
		RETURNING id
	`, movieID, screenID, showDate).Scan(&showID)
	require.NoError(t, err)

	return showFixture{
		UserID:   userID,
		ScreenID: screenID,
		ShowID:   showID,
	}
}
