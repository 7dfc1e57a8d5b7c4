package app

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/showgrid/theatre-api/api"
	"github.com/showgrid/theatre-api/internal/domain"
	"github.com/showgrid/theatre-api/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ShowtimesTestSuite struct {
	suite.Suite
	app          *Application
	showtimeRepo *mocks.MockShowtimeRepo
	movieRepo    *mocks.MockMovieRepo
	screenRepo   *mocks.MockScreenRepo
}

func (s *ShowtimesTestSuite) SetupTest() {
	s.showtimeRepo = new(mocks.MockShowtimeRepo)
	s.movieRepo = new(mocks.MockMovieRepo)
	s.screenRepo = new(mocks.MockScreenRepo)

	s.app = newTestApplication(func(a *Application) {
		a.showtimeRepo = s.showtimeRepo
		a.movieRepo = s.movieRepo
		a.screenRepo = s.screenRepo
	})
}

func TestShowtimesSuite(t *testing.T) {
	suite.Run(t, new(ShowtimesTestSuite))
}

func (s *ShowtimesTestSuite) TestCreateShowtime() {
	futureDate := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	pastDate := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	earlier := time.Now().UTC().Add(-2 * time.Hour)

	refsExist := func() {
		s.movieRepo.On("GetById", mock.Anything, 1).Return(&domain.Movie{ID: 1, IsActive: true}, nil)
		s.screenRepo.On("GetById", mock.Anything, 2).Return(&domain.Screen{ID: 2, TotalSeats: 50, IsActive: true}, nil)
	}

	tests := []struct {
		name       string
		body       api.ShowtimeRequest
		setupMocks func()
		wantStatus int
	}{
		{
			name:       "should fail validation when date is malformed",
			body:       api.ShowtimeRequest{MovieId: 1, ScreenId: 2, Date: "07-08-2026", Time: "20:00"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "should fail when date is in the past",
			body:       api.ShowtimeRequest{MovieId: 1, ScreenId: 2, Date: pastDate, Time: "20:00"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "should fail when the time has already passed today",
			body: api.ShowtimeRequest{
				MovieId:  1,
				ScreenId: 2,
				Date:     earlier.Format("2006-01-02"),
				Time:     earlier.Format("15:04"),
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "should fail when the movie does not exist",
			body: api.ShowtimeRequest{MovieId: 1, ScreenId: 2, Date: futureDate, Time: "20:00"},
			setupMocks: func() {
				s.movieRepo.On("GetById", mock.Anything, 1).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "should fail when the screen is missing or inactive",
			body: api.ShowtimeRequest{MovieId: 1, ScreenId: 2, Date: futureDate, Time: "20:00"},
			setupMocks: func() {
				s.movieRepo.On("GetById", mock.Anything, 1).Return(&domain.Movie{ID: 1, IsActive: true}, nil)
				s.screenRepo.On("GetById", mock.Anything, 2).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "should fail when an active duplicate exists for the slot",
			body: api.ShowtimeRequest{MovieId: 1, ScreenId: 2, Date: futureDate, Time: "20:00"},
			setupMocks: func() {
				refsExist()
				s.showtimeRepo.On("Create", mock.Anything, mock.Anything).
					Return(false, domain.ErrDuplicateShowtime)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "should create a new showtime",
			body: api.ShowtimeRequest{
				MovieId:  1,
				ScreenId: 2,
				Date:     futureDate,
				Time:     "20:00",
				Price:    decimal.NewFromFloat(15.50),
			},
			setupMocks: func() {
				refsExist()
				s.showtimeRepo.On("Create", mock.Anything, mock.MatchedBy(func(st *domain.Showtime) bool {
					return st.MovieID == 1 && st.ScreenID == 2 && st.Time == "20:00:00" && st.Price == 15.50
				})).Return(false, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "should reactivate a soft-deleted showtime for the same slot",
			body: api.ShowtimeRequest{MovieId: 1, ScreenId: 2, Date: futureDate, Time: "20:00"},
			setupMocks: func() {
				refsExist()
				s.showtimeRepo.On("Create", mock.Anything, mock.Anything).Return(true, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/shows", tt.body)

			s.app.CreateShowtimeHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)
			s.showtimeRepo.AssertExpectations(s.T())
			s.movieRepo.AssertExpectations(s.T())
			s.screenRepo.AssertExpectations(s.T())
		})
	}
}

func (s *ShowtimesTestSuite) TestGetSeatMap() {
	s.Run("should fail when the show is missing or expired", func() {
		s.SetupTest()

		s.showtimeRepo.On("GetSeatMap", mock.Anything, 9, 1).Return(nil, domain.ErrRecordNotFound)

		w, r := executeRequest(s.T(), http.MethodGet, "/shows/9/seatmap", nil)
		r = setupTestSession(s.T(), s.app, r, 1, domain.RoleUser)
		r = withURLParam(r, "id", "9")

		s.app.GetSeatMapHandler(w, r)

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("should partition seats between the caller and others", func() {
		s.SetupTest()

		seatMap := &domain.SeatMap{
			ShowID:      9,
			Date:        time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
			Time:        "20:00:00",
			Price:       12.00,
			ScreenNo:    3,
			Theatre:     "Grand Plaza",
			TotalSeats:  50,
			MySeats:     []int{4, 5},
			OthersSeats: []int{1, 2, 10},
		}

		s.showtimeRepo.On("GetSeatMap", mock.Anything, 9, 1).Return(seatMap, nil)

		w, r := executeRequest(s.T(), http.MethodGet, "/shows/9/seatmap", nil)
		r = setupTestSession(s.T(), s.app, r, 1, domain.RoleUser)
		r = withURLParam(r, "id", "9")

		s.app.GetSeatMapHandler(w, r)

		s.Equal(http.StatusOK, w.Code)

		var resp api.SeatMapResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

		want := api.SeatMapResponse{
			ShowId:            9,
			Date:              "2026-09-12",
			Time:              "20:00:00",
			Price:             decimal.NewFromFloat(12.00),
			ScreenNo:          3,
			Theatre:           "Grand Plaza",
			TotalSeats:        50,
			MyBookedSeats:     []int{4, 5},
			OthersBookedSeats: []int{1, 2, 10},
		}

		if diff := cmp.Diff(want, resp); diff != "" {
			s.T().Errorf("response mismatch (-want +got):\n%s", diff)
		}
	})
}

func (s *ShowtimesTestSuite) TestDeleteShowtimes() {
	s.Run("should fail validation when the id list is empty", func() {
		s.SetupTest()

		w, r := executeRequest(s.T(), http.MethodPost, "/shows/deletions", api.DeleteShowtimesRequest{Ids: []int{}})

		s.app.DeleteShowtimesHandler(w, r)

		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("should report how many rows were actually deactivated", func() {
		s.SetupTest()

		s.showtimeRepo.On("DeactivateByIds", mock.Anything, []int{1, 2, 3}).Return(2, nil)

		w, r := executeRequest(s.T(), http.MethodPost, "/shows/deletions", api.DeleteShowtimesRequest{Ids: []int{1, 2, 3}})

		s.app.DeleteShowtimesHandler(w, r)

		s.Equal(http.StatusOK, w.Code)

		var resp api.DeleteShowtimesResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal(2, resp.Deactivated)
		s.Equal(3, resp.Requested)
	})
}

func (s *ShowtimesTestSuite) TestExpirePastShowtimes() {
	s.SetupTest()

	s.showtimeRepo.On("DeactivatePast", mock.Anything).Return(int64(4), nil)

	w, r := executeRequest(s.T(), http.MethodPost, "/shows/expiry", nil)

	s.app.ExpirePastShowtimesHandler(w, r)

	s.Equal(http.StatusOK, w.Code)

	var resp api.ExpireShowtimesResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Equal(int64(4), resp.Expired)
}
