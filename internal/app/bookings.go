package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/showgrid/theatre-api/api"
	"github.com/showgrid/theatre-api/internal/domain"
)

// CreateBookingHandler runs the reservation flow: validate the request
// shape, resolve the show and its capacity, check the seat numbers against
// that capacity, then hand the normalized seat set to the atomic reservation.
// Validation failures are reported before any conflict information, so a
// request that is both malformed and conflicting yields the validation error.
func (app *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateBookingRequest

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

	userID := app.contextGetUserId(r)

	if input.UserId != userID {
		role := app.sessionManager.GetString(r.Context(), SessionKeyUserRole.String())
		if role != domain.RoleAdmin {
			app.forbiddenResponse(w, r)
			return
		}

		userID = input.UserId
	}

	seats := domain.NormalizeSeats(input.SeatNos)
	if len(seats) == 0 {
		app.badRequestResponse(w, r, errors.New("at least one seat must be requested"))
		return
	}

	showtime, err := app.showtimeRepo.GetActiveById(r.Context(), input.ShowId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	var invalid []int
	for _, seatNo := range seats {
		if seatNo < 1 || seatNo > showtime.TotalSeats {
			invalid = append(invalid, seatNo)
		}
	}

	if len(invalid) > 0 {
		err := fmt.Errorf("seat numbers %v are out of range, the screen has seats 1 to %d", invalid, showtime.TotalSeats)
		app.badRequestResponse(w, r, err)
		return
	}

	bookingType := input.BookingType
	if bookingType == "" {
		bookingType = "Online"
	}

	booking := domain.Booking{
		UserID:        userID,
		ShowID:        input.ShowId,
		BookingType:   bookingType,
		PaymentStatus: input.PaymentStatus,
		Seats:         seats,
	}

	err = app.bookingRepo.Reserve(r.Context(), &booking)
	if err != nil {
		var conflictErr *domain.SeatConflictError

		switch {
		case errors.As(err, &conflictErr):
			logger.Info("seat conflict on reservation", "show_id", input.ShowId, "conflicts", conflictErr.Seats)
			app.seatConflictResponse(w, r, conflictErr.Seats)
		case errors.Is(err, domain.ErrTransactionConflict):
			app.reservationContentionResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	logger.Info("booking created", "booking_id", booking.ID, "show_id", booking.ShowID, "seats", len(booking.Seats))

	resp := api.BookingResponse{
		BookingId:      booking.ID,
		ConfirmedSeats: booking.Seats,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CancelBookingHandler releases the booking's seats by soft-cancelling it.
// Non-owners get a 404 rather than a 403 so booking ids cannot be probed.
func (app *Application) CancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if booking.UserID != app.contextGetUserId(r) {
		role := app.sessionManager.GetString(r.Context(), SessionKeyUserRole.String())
		if role != domain.RoleAdmin {
			app.notFoundResponse(w, r)
			return
		}
	}

	err = app.bookingRepo.Deactivate(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.contextGetLogger(r).Info("booking cancelled", "booking_id", id)

	resp := api.CancelBookingResponse{
		BookingId: id,
		Message:   "Booking cancelled",
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookedSeatsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	_, err = app.showtimeRepo.GetActiveById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	seats, err := app.bookingRepo.GetActiveSeatsByShow(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.BookedSeatsResponse{
		ShowId: id,
		Seats:  seats,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingsHandler(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	bookings, metadata, err := app.bookingRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.BookingListResponse{
		Bookings: make([]api.BookingSummaryResponse, 0, len(bookings)),
		Metadata: toMetadataResponse(metadata),
	}

	for _, booking := range bookings {
		resp.Bookings = append(resp.Bookings, toBookingSummaryResponse(&booking))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingSummaryResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingSummaryResponse(booking *domain.BookingSummary) api.BookingSummaryResponse {
	return api.BookingSummaryResponse{
		Id:            booking.ID,
		UserId:        booking.UserID,
		BookingType:   booking.BookingType,
		PaymentStatus: booking.PaymentStatus,
		CreatedAt:     booking.CreatedAt,
		SeatNos:       booking.Seats,
		MovieName:     booking.MovieName,
		UserName:      booking.UserName,
	}
}
