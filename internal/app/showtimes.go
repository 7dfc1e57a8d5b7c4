package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/showgrid/theatre-api/api"
	"github.com/showgrid/theatre-api/internal/domain"
)

func (app *Application) GetShowtimesByScreenHandler(w http.ResponseWriter, r *http.Request) {
	screenID, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtimes, err := app.showtimeRepo.GetByScreen(r.Context(), screenID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ShowtimeListResponse{
		Showtimes: make([]api.ShowtimeDetailResponse, 0, len(showtimes)),
	}

	for _, showtime := range showtimes {
		resp.Showtimes = append(resp.Showtimes, api.ShowtimeDetailResponse{
			ShowtimeResponse: toShowtimeResponse(&showtime.Showtime),
			MovieName:        showtime.MovieName,
			BookingsCount:    showtime.BookingsCount,
		})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetActiveById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowtimeResponse(&showtime.Showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	var input api.ShowtimeRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeFromRequest(input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.checkShowtimeRefs(r.Context(), input.MovieId, input.ScreenId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	reactivated, err := app.showtimeRepo.Create(r.Context(), showtime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateShowtime):
			app.errorResponse(w, r, http.StatusConflict, domain.ErrDuplicateShowtime.Error())
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	status := http.StatusCreated
	if reactivated {
		status = http.StatusOK
	}

	err = app.writeJSON(w, status, toShowtimeResponse(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.ShowtimeRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeFromRequest(input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	showtime.ID = id

	err = app.checkShowtimeRefs(r.Context(), input.MovieId, input.ScreenId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.showtimeRepo.Update(r.Context(), showtime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrDuplicateShowtime):
			app.errorResponse(w, r, http.StatusConflict, domain.ErrDuplicateShowtime.Error())
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowtimeResponse(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteShowtimesHandler(w http.ResponseWriter, r *http.Request) {
	var input api.DeleteShowtimesRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	deactivated, err := app.showtimeRepo.DeactivateByIds(r.Context(), input.Ids)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.DeleteShowtimesResponse{
		Deactivated: deactivated,
		Requested:   len(input.Ids),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ExpirePastShowtimesHandler(w http.ResponseWriter, r *http.Request) {
	expired, err := app.showtimeRepo.DeactivatePast(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("expired past showtimes", "count", expired)

	err = app.writeJSON(w, http.StatusOK, api.ExpireShowtimesResponse{Expired: expired}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSeatMapHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seatMap, err := app.showtimeRepo.GetSeatMap(r.Context(), id, app.contextGetUserId(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.SeatMapResponse{
		ShowId:            seatMap.ShowID,
		Date:              seatMap.Date.Format("2006-01-02"),
		Time:              seatMap.Time,
		Price:             decimal.NewFromFloat(seatMap.Price),
		ScreenNo:          seatMap.ScreenNo,
		Theatre:           seatMap.Theatre,
		TotalSeats:        seatMap.TotalSeats,
		MyBookedSeats:     seatMap.MySeats,
		OthersBookedSeats: seatMap.OthersSeats,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showtimeFromRequest converts a validated request into a domain showtime,
// enforcing the rules the struct tags cannot express.
func (app *Application) showtimeFromRequest(input api.ShowtimeRequest) (*domain.Showtime, error) {
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %s", input.Date)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, errors.New("date must not be in the past")
	}

	if input.Price.IsNegative() {
		return nil, errors.New("price must not be negative")
	}

	showTime := input.Time
	if len(showTime) == 5 {
		showTime += ":00"
	}

	if date.Equal(today) {
		clock, err := time.Parse("15:04:05", showTime)
		if err != nil {
			return nil, fmt.Errorf("invalid time: %s", input.Time)
		}

		start := date.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
		if start.Before(time.Now().UTC()) {
			return nil, errors.New("show time must not be in the past")
		}
	}

	return &domain.Showtime{
		MovieID:  input.MovieId,
		ScreenID: input.ScreenId,
		Date:     date,
		Time:     showTime,
		Price:    input.Price.InexactFloat64(),
	}, nil
}

// checkShowtimeRefs verifies the referenced movie and screen exist and are
// active, so a dangling reference answers not-found instead of surfacing a
// storage error.
func (app *Application) checkShowtimeRefs(ctx context.Context, movieID, screenID int) error {
	_, err := app.movieRepo.GetById(ctx, movieID)
	if err != nil {
		return err
	}

	_, err = app.screenRepo.GetById(ctx, screenID)

	return err
}

func toShowtimeResponse(showtime *domain.Showtime) api.ShowtimeResponse {
	return api.ShowtimeResponse{
		Id:       showtime.ID,
		MovieId:  showtime.MovieID,
		ScreenId: showtime.ScreenID,
		Date:     showtime.Date.Format("2006-01-02"),
		Time:     showtime.Time,
		Price:    decimal.NewFromFloat(showtime.Price),
	}
}
