package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("theatre-api", otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/healthcheck", app.GetHealthHandler)

	r.Post("/auth/register", app.RegisterUserHandler)
	r.Post("/auth/login", app.LoginHandler)
	r.Post("/auth/logout", app.LogoutHandler)

	r.Get("/genres", app.GetGenresHandler)
	r.Get("/genres/{id}", app.GetGenreHandler)
	r.Get("/movies", app.GetMoviesHandler)
	r.Get("/movies/{id}", app.GetMovieHandler)
	r.Get("/theatres", app.GetTheatresHandler)
	r.Get("/theatres/{id}", app.GetTheatreHandler)
	r.Get("/theatres/{id}/screens", app.GetScreensByTheatreHandler)
	r.Get("/screens/{id}", app.GetScreenHandler)
	r.Get("/screens/{id}/shows", app.GetShowtimesByScreenHandler)
	r.Get("/shows/{id}", app.GetShowtimeHandler)
	r.Get("/shows/{id}/seats", app.GetBookedSeatsHandler)

	r.With(app.requireAuthentication).Group(func(r chi.Router) {
		r.Get("/users/me", app.GetCurrentUserHandler)
		r.Patch("/users/me", app.UpdateCurrentUserHandler)
		r.Delete("/users/me", app.DeactivateCurrentUserHandler)

		r.Get("/shows/{id}/seatmap", app.GetSeatMapHandler)
		r.Post("/bookings", app.CreateBookingHandler)
		r.Delete("/bookings/{id}", app.CancelBookingHandler)
	})

	r.With(app.requireAuthentication, app.requireAdmin).Group(func(r chi.Router) {
		r.Post("/genres", app.CreateGenreHandler)
		r.Put("/genres/{id}", app.UpdateGenreHandler)
		r.Delete("/genres/{id}", app.DeleteGenreHandler)

		r.Post("/movies", app.CreateMovieHandler)
		r.Put("/movies/{id}", app.UpdateMovieHandler)
		r.Delete("/movies/{id}", app.DeleteMovieHandler)

		r.Post("/theatres", app.CreateTheatreHandler)
		r.Put("/theatres/{id}", app.UpdateTheatreHandler)
		r.Delete("/theatres/{id}", app.DeleteTheatreHandler)

		r.Post("/screens", app.CreateScreenHandler)
		r.Put("/screens/{id}", app.UpdateScreenHandler)
		r.Delete("/screens/{id}", app.DeleteScreenHandler)

		r.Post("/shows", app.CreateShowtimeHandler)
		r.Put("/shows/{id}", app.UpdateShowtimeHandler)
		r.Post("/shows/deletions", app.DeleteShowtimesHandler)
		r.Post("/shows/expiry", app.ExpirePastShowtimesHandler)

		r.Get("/users", app.GetUsersHandler)
		r.Delete("/users/{id}", app.DeactivateUserHandler)

		r.Get("/bookings", app.GetBookingsHandler)
		r.Get("/bookings/{id}", app.GetBookingHandler)
	})

	return r
}
