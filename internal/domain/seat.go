package domain

import "context"

type Seat struct {
	ID     int
	RoomID int
	Code   string
	Active bool
}

// SeatMap describes a showtime's room with per-seat availability. A seat is
// unavailable while a non-cancelled ticket exists for it.
type SeatMap struct {
	ShowtimeID int
	RoomID     int
	RoomName   string
	Seats      []SeatAvailability
}

type SeatAvailability struct {
	Seat
	Available bool
}

type SeatRepository interface {
	GetSeatMapByShowtime(ctx context.Context, showtimeID int) (*SeatMap, error)
	GetSeatsByRoomAndCodes(ctx context.Context, roomID int, codes []string) ([]Seat, error)
}
