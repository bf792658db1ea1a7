package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TurnaroundBuffer is the cleaning/preparation time a room stays blocked
// after the movie ends.
const TurnaroundBuffer = 30 * time.Minute

type Showtime struct {
	ID        int
	MovieID   int
	RoomID    int
	StartTime time.Time
	Active    bool
}

// ShowtimeDetails carries everything the ticketing flow needs to resolve in a
// single lookup: the showtime itself plus the movie runtime and the room's
// price table.
type ShowtimeDetails struct {
	ID            int
	MovieID       int
	MovieTitle    string
	MovieDuration int
	RoomID        int
	RoomName      string
	RoomType      string
	AdultPrice    decimal.Decimal
	ChildPrice    decimal.Decimal
	StartTime     time.Time
	Active        bool
}

// ShowtimeSlot is the projection used by the scheduling conflict check. The
// occupied interval of each slot depends on its own movie's runtime, so the
// duration travels with the slot.
type ShowtimeSlot struct {
	ID            int
	StartTime     time.Time
	MovieDuration int
}

// OccupiedInterval returns the half-open interval [start, end) during which a
// showtime blocks its room: movie runtime plus the turnaround buffer.
func OccupiedInterval(start time.Time, movieDuration int) (time.Time, time.Time) {
	return start, start.Add(time.Duration(movieDuration)*time.Minute + TurnaroundBuffer)
}

// HasScheduleConflict reports whether a candidate showtime overlaps any of the
// given slots. Intervals are half-open, so a showtime starting exactly when
// another one's buffer ends does not conflict.
func HasScheduleConflict(candidateStart time.Time, movieDuration int, existing []ShowtimeSlot) bool {
	cStart, cEnd := OccupiedInterval(candidateStart, movieDuration)

	for _, slot := range existing {
		sStart, sEnd := OccupiedInterval(slot.StartTime, slot.MovieDuration)

		if cStart.Before(sEnd) && sStart.Before(cEnd) {
			return true
		}
	}

	return false
}

type ShowtimeRepository interface {
	GetDetailsByID(ctx context.Context, id int) (*ShowtimeDetails, error)
	GetActiveSlotsByRoom(ctx context.Context, roomID, excludeShowtimeID int) ([]ShowtimeSlot, error)
	Create(ctx context.Context, showtime *Showtime) error
	Update(ctx context.Context, showtime *Showtime) error
	Deactivate(ctx context.Context, id int) error
}
