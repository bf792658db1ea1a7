package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/cineflow/cineflow/api"
	"github.com/cineflow/cineflow/internal/domain"
)

func (app *Application) CheckInTicketHandler(w http.ResponseWriter, r *http.Request) {
	ticketID, err := app.readIDParam(r, "ticketId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	usherID := app.contextGetUserId(r)
	now := time.Now()

	checkIn, err := app.ticketRepo.CheckIn(r.Context(), ticketID, usherID, now)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrAlreadyUsed):
			app.conflictResponse(w, r, "ticket has already been used")
		case errors.Is(err, domain.ErrAlreadyCancelled):
			app.unprocessableResponse(w, r, "ticket has been cancelled")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := api.CheckInResponse{
		TicketId: checkIn.TicketID,
		UsedAt:   checkIn.UsedAt,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
