package app

import (
	"net/http"
	"time"

	"github.com/cineflow/cineflow/api"
)

func (app *Application) GetUserCreditsHandler(w http.ResponseWriter, r *http.Request) {
	userID := app.contextGetUserId(r)
	now := time.Now()

	balance, err := app.creditRepo.GetBalance(r.Context(), userID, now)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	entries, err := app.creditRepo.GetActiveEntriesByUser(r.Context(), userID, now)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.CreditBalanceResponse{
		Balance: balance,
		Entries: make([]api.CreditEntry, 0, len(entries)),
	}

	for _, e := range entries {
		resp.Entries = append(resp.Entries, api.CreditEntry{
			TicketId:    e.TicketID,
			CancelledAt: e.CancelledAt,
			Credited:    e.Credited,
			Remaining:   e.Remaining,
			Redeemed:    e.Redeemed,
		})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
