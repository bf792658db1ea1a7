package app

import (
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/cineflow/cineflow/internal/domain"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%v", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.sessionManager.Exists(r.Context(), SessionKeyUserId) {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireRole must run after requireAuthentication. It resolves the session
// user and rejects the request unless their role is one of the given roles.
func (app *Application) requireRole(roles ...domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := app.contextGetUserId(r)

			user, err := app.userRepo.GetByID(r.Context(), userID)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrRecordNotFound):
					app.unauthorizedAccessResponse(w, r)
				default:
					app.serverErrorResponse(w, r, err)
				}
				return
			}

			if !slices.Contains(roles, user.Role) {
				app.forbiddenResponse(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
