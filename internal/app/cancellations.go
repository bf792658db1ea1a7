package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cineflow/cineflow/api"
	"github.com/cineflow/cineflow/internal/domain"
)

func (app *Application) CancelTicketsHandler(w http.ResponseWriter, r *http.Request) {
	var input api.CancelTicketsRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.validateRequest(w, r, input) {
		return
	}

	userID := app.contextGetUserId(r)
	now := time.Now()

	result, err := app.ticketRepo.CancelTickets(r.Context(), input.TicketIds, userID, now)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithMsg(w, r, err.Error())
		case errors.Is(err, domain.ErrNotTicketOwner):
			app.forbiddenResponse(w, r)
		case errors.Is(err, domain.ErrAlreadyCancelled),
			errors.Is(err, domain.ErrAlreadyUsed),
			errors.Is(err, domain.ErrShowtimeStarted):
			app.unprocessableResponse(w, r, err.Error())
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.sendCancellationConfirmation(userID, result)

	resp := api.CancellationResponse{
		CreditedTotal: result.CreditedTotal,
		Credits:       make([]api.CreditEntry, 0, len(result.Credits)),
	}

	for _, c := range result.Credits {
		resp.Credits = append(resp.Credits, api.CreditEntry{
			TicketId:    c.TicketID,
			CancelledAt: c.CancelledAt,
			Credited:    c.Credited,
			Remaining:   c.Remaining,
			Redeemed:    c.Redeemed,
		})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) sendCancellationConfirmation(userID int, result *domain.CancellationResult) {
	app.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, err := app.userRepo.GetByID(ctx, userID)
		if err != nil {
			app.logger.Error("failed to load user for cancellation email", "error", err, "user_id", userID)
			return
		}

		data := map[string]any{
			"FirstName":     user.FirstName,
			"TicketCount":   len(result.Credits),
			"CreditedTotal": result.CreditedTotal,
		}

		err = app.mailer.Send(user.Email, "cancellation_confirmation.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send cancellation email", "error", err, "user_id", userID)
		}
	})
}
