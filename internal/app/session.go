package app

import (
	"errors"
	"net/http"

	"github.com/cineflow/cineflow/api"
	"github.com/cineflow/cineflow/internal/domain"
)

const SessionKeyUserId = "userId"

func (app *Application) contextGetUserId(r *http.Request) int {
	return app.sessionManager.GetInt(r.Context(), SessionKeyUserId)
}

// CreateSessionHandler starts a session for an already-identified user.
// Credential verification happens upstream; this service only needs to know
// who the caller is.
func (app *Application) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	var input api.CreateSessionRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.validateRequest(w, r, input) {
		return
	}

	user, err := app.userRepo.GetByID(r.Context(), input.UserId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithMsg(w, r, "user not found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), SessionKeyUserId, user.ID)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	err := app.sessionManager.Destroy(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
