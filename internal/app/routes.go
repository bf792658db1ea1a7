package app

import (
	"net/http"

	"github.com/cineflow/cineflow/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if app.config.OtelCollectorUrl != "" {
		r.Use(otelchi.Middleware("cineflow", otelchi.WithChiRoutes(r)))
	}
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.HealthcheckHandler)

	r.Post("/sessions", app.CreateSessionHandler)
	r.Delete("/sessions", app.DeleteSessionHandler)

	r.Get("/showtimes/{showtimeId}/seats", app.GetSeatMapHandler)

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication)

		r.Post("/showtimes/{showtimeId}/tickets", app.PurchaseTicketsHandler)
		r.Post("/tickets/cancellations", app.CancelTicketsHandler)
		r.Get("/users/me/tickets", app.GetUserTicketsHandler)
		r.Get("/users/me/credits", app.GetUserCreditsHandler)

		r.With(app.requireRole(domain.RoleUsher, domain.RoleAdmin)).
			Post("/tickets/{ticketId}/check-in", app.CheckInTicketHandler)

		r.Route("/admin/showtimes", func(r chi.Router) {
			r.Use(app.requireRole(domain.RoleAdmin))

			r.Post("/", app.CreateShowtimeHandler)
			r.Patch("/{showtimeId}", app.UpdateShowtimeHandler)
			r.Delete("/{showtimeId}", app.DeactivateShowtimeHandler)
		})
	})

	return r
}
