package app

import (
	"errors"
	"net/http"

	"github.com/cineflow/cineflow/api"
	"github.com/cineflow/cineflow/internal/domain"
)

func (app *Application) GetSeatMapHandler(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seatMap, err := app.seatRepo.GetSeatMapByShowtime(r.Context(), showtimeID)
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
		ShowtimeId: seatMap.ShowtimeID,
		RoomName:   seatMap.RoomName,
		Seats:      make([]api.SeatStatus, 0, len(seatMap.Seats)),
	}

	for _, seat := range seatMap.Seats {
		resp.Seats = append(resp.Seats, api.SeatStatus{
			Code:      seat.Code,
			Active:    seat.Active,
			Available: seat.Available,
		})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
