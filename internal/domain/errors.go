package domain

import "errors"

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrEditConflict       = errors.New("edit conflict")
	ErrShowtimeInactive   = errors.New("showtime is no longer active")
	ErrShowtimeStarted    = errors.New("showtime has already started")
	ErrSeatNotFound       = errors.New("seat not found in the showtime's room")
	ErrSeatInactive       = errors.New("seat is not active")
	ErrSeatOccupied       = errors.New("seat is already occupied")
	ErrScheduleConflict   = errors.New("room already has a showtime scheduled in that time slot")
	ErrShowtimeHasTickets = errors.New("showtime has sold tickets")
	ErrAlreadyCancelled   = errors.New("ticket has already been cancelled")
	ErrAlreadyUsed        = errors.New("ticket has already been used")
	ErrNotTicketOwner     = errors.New("ticket does not belong to the requester")
)
