package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/showgrid/theatre-api/internal/domain"
	"github.com/stretchr/testify/suite"
)

type ShowtimesTestSuite struct {
	BaseSuite
}

func TestShowtimesSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(ShowtimesTestSuite))
}

func (s *ShowtimesTestSuite) TestDuplicateShowtimeIsRejected() {
	ctx := context.Background()
	fixture := seedShow(s.T(), s.app, 20)

	existing, err := s.app.ShowtimeRepo.GetActiveById(ctx, fixture.ShowID)
	s.Require().NoError(err)

	duplicate := &domain.Showtime{
		MovieID:  existing.MovieID,
		ScreenID: existing.ScreenID,
		Date:     existing.Date,
		Time:     existing.Time,
		Price:    9.99,
	}

	_, err = s.app.ShowtimeRepo.Create(ctx, duplicate)
	s.Require().ErrorIs(err, domain.ErrDuplicateShowtime)
}

// Re-creating a soft-deleted slot reuses the row instead of inserting a new
// one, so booking history hanging off the showtime id stays intact.
func (s *ShowtimesTestSuite) TestSoftDeletedShowtimeIsReactivated() {
	ctx := context.Background()
	fixture := seedShow(s.T(), s.app, 20)

	existing, err := s.app.ShowtimeRepo.GetActiveById(ctx, fixture.ShowID)
	s.Require().NoError(err)

	deactivated, err := s.app.ShowtimeRepo.DeactivateByIds(ctx, []int{fixture.ShowID})
	s.Require().NoError(err)
	s.Equal(1, deactivated)

	// second delete of the same id flips nothing
	deactivated, err = s.app.ShowtimeRepo.DeactivateByIds(ctx, []int{fixture.ShowID})
	s.Require().NoError(err)
	s.Zero(deactivated)

	recreated := &domain.Showtime{
		MovieID:  existing.MovieID,
		ScreenID: existing.ScreenID,
		Date:     existing.Date,
		Time:     existing.Time,
		Price:    20.00,
	}

	reactivated, err := s.app.ShowtimeRepo.Create(ctx, recreated)
	s.Require().NoError(err)
	s.True(reactivated)
	s.Equal(fixture.ShowID, recreated.ID)

	refreshed, err := s.app.ShowtimeRepo.GetActiveById(ctx, fixture.ShowID)
	s.Require().NoError(err)
	s.InDelta(20.00, refreshed.Price, 0.001)
}

func (s *ShowtimesTestSuite) TestGetByScreenSkipsPastAndInactive() {
	ctx := context.Background()
	fixture := seedShow(s.T(), s.app, 20)

	pastDate := time.Now().AddDate(0, 0, -3).Format("2006-01-02")

	_, err := s.app.DB.Exec(ctx, `
		INSERT INTO showtimes (movie_id, screen_id, show_date, show_time, price)
		SELECT movie_id, $2::int, $3::date, '18:00:00'::time, price FROM showtimes WHERE id = $1
	`, fixture.ShowID, fixture.ScreenID, pastDate)
	s.Require().NoError(err)

	showtimes, err := s.app.ShowtimeRepo.GetByScreen(ctx, fixture.ScreenID)
	s.Require().NoError(err)

	s.Len(showtimes, 1)
	s.Equal(fixture.ShowID, showtimes[0].ID)
}
