package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/cineflow/cineflow/api"
	"github.com/cineflow/cineflow/internal/domain"
)

func (app *Application) CreateShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	var input api.CreateShowtimeRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.validateRequest(w, r, input) {
		return
	}

	if _, ok := app.scheduleChecks(w, r, input.MovieId, input.RoomId, input.StartTime, 0); !ok {
		return
	}

	showtime := &domain.Showtime{
		MovieID:   input.MovieId,
		RoomID:    input.RoomId,
		StartTime: input.StartTime,
		Active:    true,
	}

	err = app.showtimeRepo.Create(r.Context(), showtime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScheduleConflict):
			app.conflictResponse(w, r, "the room is already booked for an overlapping showtime")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, showtimeResponse(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.UpdateShowtimeRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.validateRequest(w, r, input) {
		return
	}

	existing, err := app.showtimeRepo.GetDetailsByID(r.Context(), showtimeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	active := existing.Active
	if input.Active != nil {
		active = *input.Active
	}

	// Only an active showtime occupies its room, so a deactivating update
	// skips the conflict check.
	if active {
		if _, ok := app.scheduleChecks(w, r, input.MovieId, input.RoomId, input.StartTime, showtimeID); !ok {
			return
		}
	}

	showtime := &domain.Showtime{
		ID:        showtimeID,
		MovieID:   input.MovieId,
		RoomID:    input.RoomId,
		StartTime: input.StartTime,
		Active:    active,
	}

	err = app.showtimeRepo.Update(r.Context(), showtime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrScheduleConflict):
			app.conflictResponse(w, r, "the room is already booked for an overlapping showtime")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, showtimeResponse(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeactivateShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.showtimeRepo.Deactivate(r.Context(), showtimeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrShowtimeHasTickets):
			app.conflictResponse(w, r, "showtime still has active tickets")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// scheduleChecks runs the shared validation for creating or rescheduling a
// showtime: the movie and room must exist and be active, the start time must
// be in the future, and the room must be free for the movie's occupied
// interval. Error responses are written here; the boolean reports success.
func (app *Application) scheduleChecks(w http.ResponseWriter, r *http.Request, movieID, roomID int, startTime time.Time, excludeShowtimeID int) (*domain.Movie, bool) {
	if !startTime.After(time.Now()) {
		app.unprocessableResponse(w, r, "start time must be in the future")
		return nil, false
	}

	movie, err := app.catalogRepo.GetMovieByID(r.Context(), movieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.unprocessableResponse(w, r, "movie not found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return nil, false
	}
	if !movie.Active {
		app.unprocessableResponse(w, r, "movie is not active")
		return nil, false
	}

	room, err := app.catalogRepo.GetRoomByID(r.Context(), roomID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.unprocessableResponse(w, r, "room not found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return nil, false
	}
	if !room.Active {
		app.unprocessableResponse(w, r, "room is not active")
		return nil, false
	}

	slots, err := app.showtimeRepo.GetActiveSlotsByRoom(r.Context(), roomID, excludeShowtimeID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return nil, false
	}

	if domain.HasScheduleConflict(startTime, movie.Duration, slots) {
		app.conflictResponse(w, r, "the room is already booked for an overlapping showtime")
		return nil, false
	}

	return movie, true
}

func showtimeResponse(s *domain.Showtime) api.ShowtimeResponse {
	return api.ShowtimeResponse{
		Id:        s.ID,
		MovieId:   s.MovieID,
		RoomId:    s.RoomID,
		StartTime: s.StartTime,
		Active:    s.Active,
	}
}
