package app

import (
	"errors"
	"net/http"

	"github.com/showgrid/theatre-api/api"
	"github.com/showgrid/theatre-api/internal/domain"
)

func (app *Application) GetScreensByTheatreHandler(w http.ResponseWriter, r *http.Request) {
	theatreID, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	screens, err := app.screenRepo.GetByTheatre(r.Context(), theatreID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ScreenListResponse{
		Screens: make([]api.ScreenResponse, 0, len(screens)),
	}

	for _, screen := range screens {
		resp.Screens = append(resp.Screens, toScreenResponse(&screen))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetScreenHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	screen, err := app.screenRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreenResponse(screen), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateScreenHandler(w http.ResponseWriter, r *http.Request) {
	var input api.ScreenRequest

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

	screen := domain.Screen{
		TheatreID:  input.TheatreId,
		ScreenNo:   input.ScreenNo,
		TotalSeats: input.TotalSeats,
	}

	err = app.screenRepo.Create(r.Context(), &screen)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.errorResponse(w, r, http.StatusConflict, "A screen with this number already exists in the theatre")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toScreenResponse(&screen), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateScreenHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.ScreenRequest

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

	screen := domain.Screen{
		ID:         id,
		TheatreID:  input.TheatreId,
		ScreenNo:   input.ScreenNo,
		TotalSeats: input.TotalSeats,
	}

	err = app.screenRepo.Update(r.Context(), &screen)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrEditConflict):
			app.errorResponse(w, r, http.StatusConflict, "A screen with this number already exists in the theatre")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreenResponse(&screen), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteScreenHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.screenRepo.Deactivate(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toScreenResponse(screen *domain.Screen) api.ScreenResponse {
	return api.ScreenResponse{
		Id:         screen.ID,
		TheatreId:  screen.TheatreID,
		ScreenNo:   screen.ScreenNo,
		TotalSeats: screen.TotalSeats,
	}
}
