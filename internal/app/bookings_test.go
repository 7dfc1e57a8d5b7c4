package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/showgrid/theatre-api/api"
	"github.com/showgrid/theatre-api/internal/domain"
	"github.com/showgrid/theatre-api/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BookingsTestSuite struct {
	suite.Suite
	app          *Application
	bookingRepo  *mocks.MockBookingRepo
	showtimeRepo *mocks.MockShowtimeRepo
}

func (s *BookingsTestSuite) SetupTest() {
	s.bookingRepo = new(mocks.MockBookingRepo)
	s.showtimeRepo = new(mocks.MockShowtimeRepo)

	s.app = newTestApplication(func(a *Application) {
		a.bookingRepo = s.bookingRepo
		a.showtimeRepo = s.showtimeRepo
	})
}

func TestBookingsSuite(t *testing.T) {
	suite.Run(t, new(BookingsTestSuite))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func (s *BookingsTestSuite) TestCreateBooking() {
	show := &domain.ShowtimeCapacity{
		Showtime:   domain.Showtime{ID: 7, MovieID: 1, ScreenID: 2, Price: 12.50, IsActive: true},
		ScreenNo:   2,
		TotalSeats: 10,
	}

	tests := []struct {
		name           string
		body           api.CreateBookingRequest
		setupMocks     func()
		wantStatus     int
		wantConflicts  []int
		wantConfirmed  []int
		wantErrMessage string
	}{
		{
			name:       "should fail validation when payment status is missing",
			body:       api.CreateBookingRequest{UserId: 1, ShowId: 7, SeatNos: []int{1, 2}},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "should fail when no seats are requested",
			body:           api.CreateBookingRequest{UserId: 1, ShowId: 7, PaymentStatus: "Paid"},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "at least one seat must be requested",
		},
		{
			name: "should fail when the show does not exist",
			body: api.CreateBookingRequest{UserId: 1, ShowId: 999, SeatNos: []int{1}, PaymentStatus: "Paid"},
			setupMocks: func() {
				s.showtimeRepo.On("GetActiveById", mock.Anything, 999).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "should fail when seat numbers exceed the screen capacity",
			body: api.CreateBookingRequest{UserId: 1, ShowId: 7, SeatNos: []int{5, 11, 12}, PaymentStatus: "Paid"},
			setupMocks: func() {
				s.showtimeRepo.On("GetActiveById", mock.Anything, 7).Return(show, nil)
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "seat numbers [11 12] are out of range, the screen has seats 1 to 10",
		},
		{
			name: "should report the exact overlapping seats on conflict",
			body: api.CreateBookingRequest{UserId: 1, ShowId: 7, SeatNos: []int{3, 4, 5}, PaymentStatus: "Paid"},
			setupMocks: func() {
				s.showtimeRepo.On("GetActiveById", mock.Anything, 7).Return(show, nil)
				s.bookingRepo.On("Reserve", mock.Anything, mock.Anything).
					Return(&domain.SeatConflictError{Seats: []int{3, 4}})
			},
			wantStatus:    http.StatusConflict,
			wantConflicts: []int{3, 4},
		},
		{
			name: "should fail with 503 when retries are exhausted by contention",
			body: api.CreateBookingRequest{UserId: 1, ShowId: 7, SeatNos: []int{1}, PaymentStatus: "Paid"},
			setupMocks: func() {
				s.showtimeRepo.On("GetActiveById", mock.Anything, 7).Return(show, nil)
				s.bookingRepo.On("Reserve", mock.Anything, mock.Anything).
					Return(fmt.Errorf("%w after 3 attempts", domain.ErrTransactionConflict))
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "should fail with 500 on storage errors",
			body: api.CreateBookingRequest{UserId: 1, ShowId: 7, SeatNos: []int{1}, PaymentStatus: "Paid"},
			setupMocks: func() {
				s.showtimeRepo.On("GetActiveById", mock.Anything, 7).Return(show, nil)
				s.bookingRepo.On("Reserve", mock.Anything, mock.Anything).Return(errors.New("database error"))
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name: "should create the booking with a normalized seat set",
			body: api.CreateBookingRequest{UserId: 1, ShowId: 7, SeatNos: []int{4, 2, 2, 3}, PaymentStatus: "Paid"},
			setupMocks: func() {
				s.showtimeRepo.On("GetActiveById", mock.Anything, 7).Return(show, nil)
				s.bookingRepo.On("Reserve", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
					return b.UserID == 1 &&
						b.ShowID == 7 &&
						b.BookingType == "Online" &&
						cmp.Equal(b.Seats, []int{2, 3, 4})
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.Booking).ID = 42
				}).Return(nil)
			},
			wantStatus:    http.StatusCreated,
			wantConfirmed: []int{2, 3, 4},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/bookings", tt.body)
			r = setupTestSession(s.T(), s.app, r, 1, domain.RoleUser)

			s.app.CreateBookingHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)

			switch {
			case tt.wantConflicts != nil:
				var resp api.SeatConflictResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal(tt.wantConflicts, resp.Conflicts)

			case tt.wantConfirmed != nil:
				var resp api.BookingResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal(42, resp.BookingId)
				s.Equal(tt.wantConfirmed, resp.ConfirmedSeats)

			case tt.wantErrMessage != "":
				var resp api.ErrorResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal(tt.wantErrMessage, resp.Message)
			}

			s.bookingRepo.AssertExpectations(s.T())
			s.showtimeRepo.AssertExpectations(s.T())
		})
	}
}

func (s *BookingsTestSuite) TestCreateBookingForAnotherUser() {
	s.Run("should forbid booking for another user without the admin role", func() {
		s.SetupTest()

		body := api.CreateBookingRequest{UserId: 2, ShowId: 7, SeatNos: []int{1}, PaymentStatus: "Paid"}

		w, r := executeRequest(s.T(), http.MethodPost, "/bookings", body)
		r = setupTestSession(s.T(), s.app, r, 1, domain.RoleUser)

		s.app.CreateBookingHandler(w, r)

		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("should allow an admin to book for another user", func() {
		s.SetupTest()

		show := &domain.ShowtimeCapacity{
			Showtime:   domain.Showtime{ID: 7, IsActive: true},
			TotalSeats: 10,
		}

		s.showtimeRepo.On("GetActiveById", mock.Anything, 7).Return(show, nil)
		s.bookingRepo.On("Reserve", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.UserID == 2
		})).Return(nil)

		body := api.CreateBookingRequest{UserId: 2, ShowId: 7, SeatNos: []int{1}, PaymentStatus: "Paid"}

		w, r := executeRequest(s.T(), http.MethodPost, "/bookings", body)
		r = setupTestSession(s.T(), s.app, r, 1, domain.RoleAdmin)

		s.app.CreateBookingHandler(w, r)

		s.Equal(http.StatusCreated, w.Code)
		s.bookingRepo.AssertExpectations(s.T())
	})
}

func (s *BookingsTestSuite) TestCancelBooking() {
	tests := []struct {
		name       string
		bookingID  string
		userID     int
		role       string
		setupMocks func()
		wantStatus int
	}{
		{
			name:       "should fail when booking ID is not a positive integer",
			bookingID:  "abc",
			userID:     1,
			role:       domain.RoleUser,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:      "should fail when the booking does not exist",
			bookingID: "99",
			userID:    1,
			role:      domain.RoleUser,
			setupMocks: func() {
				s.bookingRepo.On("GetById", mock.Anything, 99).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:      "should hide bookings owned by other users",
			bookingID: "5",
			userID:    1,
			role:      domain.RoleUser,
			setupMocks: func() {
				s.bookingRepo.On("GetById", mock.Anything, 5).
					Return(&domain.BookingSummary{ID: 5, UserID: 2}, nil)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:      "should cancel an owned booking",
			bookingID: "5",
			userID:    1,
			role:      domain.RoleUser,
			setupMocks: func() {
				s.bookingRepo.On("GetById", mock.Anything, 5).
					Return(&domain.BookingSummary{ID: 5, UserID: 1}, nil)
				s.bookingRepo.On("Deactivate", mock.Anything, 5).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:      "should let an admin cancel any booking",
			bookingID: "5",
			userID:    1,
			role:      domain.RoleAdmin,
			setupMocks: func() {
				s.bookingRepo.On("GetById", mock.Anything, 5).
					Return(&domain.BookingSummary{ID: 5, UserID: 2}, nil)
				s.bookingRepo.On("Deactivate", mock.Anything, 5).Return(nil)
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

			w, r := executeRequest(s.T(), http.MethodDelete, "/bookings/"+tt.bookingID, nil)
			r = setupTestSession(s.T(), s.app, r, tt.userID, tt.role)
			r = withURLParam(r, "id", tt.bookingID)

			s.app.CancelBookingHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var resp api.CancelBookingResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal(5, resp.BookingId)
			}

			s.bookingRepo.AssertExpectations(s.T())
		})
	}
}

func (s *BookingsTestSuite) TestGetBookedSeats() {
	s.Run("should fail when the show does not exist", func() {
		s.SetupTest()

		s.showtimeRepo.On("GetActiveById", mock.Anything, 3).Return(nil, domain.ErrRecordNotFound)

		w, r := executeRequest(s.T(), http.MethodGet, "/shows/3/seats", nil)
		r = withURLParam(r, "id", "3")

		s.app.GetBookedSeatsHandler(w, r)

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("should return the sorted union of booked seats", func() {
		s.SetupTest()

		show := &domain.ShowtimeCapacity{Showtime: domain.Showtime{ID: 3}, TotalSeats: 20}
		s.showtimeRepo.On("GetActiveById", mock.Anything, 3).Return(show, nil)
		s.bookingRepo.On("GetActiveSeatsByShow", mock.Anything, 3).Return([]int{1, 4, 9}, nil)

		w, r := executeRequest(s.T(), http.MethodGet, "/shows/3/seats", nil)
		r = withURLParam(r, "id", "3")

		s.app.GetBookedSeatsHandler(w, r)

		s.Equal(http.StatusOK, w.Code)

		var resp api.BookedSeatsResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

		want := api.BookedSeatsResponse{ShowId: 3, Seats: []int{1, 4, 9}}
		if diff := cmp.Diff(want, resp); diff != "" {
			s.T().Errorf("response mismatch (-want +got):\n%s", diff)
		}
	})
}
