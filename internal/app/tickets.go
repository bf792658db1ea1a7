package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cineflow/cineflow/api"
	"github.com/cineflow/cineflow/internal/domain"
)

const defaultPaymentMethod = "card"

func (app *Application) PurchaseTicketsHandler(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.PurchaseTicketsRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.validateRequest(w, r, input) {
		return
	}

	userID := app.contextGetUserId(r)
	now := time.Now()

	details, err := app.showtimeRepo.GetDetailsByID(r.Context(), showtimeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if !details.Active {
		app.unprocessableResponse(w, r, "this showtime is no longer on sale")
		return
	}

	if !details.StartTime.After(now) {
		app.unprocessableResponse(w, r, "this showtime has already started")
		return
	}

	seats, err := app.resolveSeats(w, r, details, input.SeatCodes)
	if err != nil {
		return
	}

	typeBySeat := make(map[string]domain.TicketType, len(input.TicketTypes))
	for code, ticketType := range input.TicketTypes {
		typeBySeat[code] = domain.TicketType(ticketType)
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	purchase := domain.NewPurchase(details, seats, typeBySeat, userID, input.UseCredit, paymentMethod, now)

	err = app.ticketRepo.CreatePurchase(r.Context(), purchase)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatOccupied):
			app.conflictResponse(w, r, err.Error())
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.sendPurchaseConfirmation(purchase, details)

	resp := api.PurchaseResponse{
		ShowtimeId:    details.ID,
		Tickets:       make([]api.TicketSummary, 0, len(purchase.Tickets)),
		TotalPrice:    purchase.TotalPrice(),
		CreditApplied: purchase.CreditApplied,
		AmountDue:     purchase.TotalPrice().Sub(purchase.CreditApplied),
		PaymentMethod: purchase.PaymentMethod,
	}

	for _, ticket := range purchase.Tickets {
		resp.Tickets = append(resp.Tickets, api.TicketSummary{
			Id:         ticket.ID,
			Reference:  ticket.Reference.String(),
			SeatCode:   ticket.SeatCode,
			TicketType: string(ticket.Type),
			AmountPaid: ticket.AmountPaid,
		})
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// resolveSeats maps the requested codes to seats in the showtime's room,
// preserving request order. It writes the error response itself, so callers
// only need to bail out on a non-nil error.
func (app *Application) resolveSeats(w http.ResponseWriter, r *http.Request, details *domain.ShowtimeDetails, codes []string) ([]domain.Seat, error) {
	seats, err := app.seatRepo.GetSeatsByRoomAndCodes(r.Context(), details.RoomID, codes)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return nil, err
	}

	byCode := make(map[string]domain.Seat, len(seats))
	for _, seat := range seats {
		byCode[seat.Code] = seat
	}

	ordered := make([]domain.Seat, 0, len(codes))

	for _, code := range codes {
		seat, ok := byCode[code]
		if !ok {
			err := fmt.Errorf("seat %s: %w", code, domain.ErrSeatNotFound)
			app.notFoundResponseWithMsg(w, r, err.Error())
			return nil, err
		}
		if !seat.Active {
			err := fmt.Errorf("seat %s: %w", code, domain.ErrSeatInactive)
			app.unprocessableResponse(w, r, err.Error())
			return nil, err
		}
		ordered = append(ordered, seat)
	}

	return ordered, nil
}

func (app *Application) sendPurchaseConfirmation(purchase *domain.Purchase, details *domain.ShowtimeDetails) {
	app.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, err := app.userRepo.GetByID(ctx, purchase.UserID)
		if err != nil {
			app.logger.Error("failed to load user for confirmation email", "error", err, "user_id", purchase.UserID)
			return
		}

		seatCodes := make([]string, 0, len(purchase.Tickets))
		for _, t := range purchase.Tickets {
			seatCodes = append(seatCodes, t.SeatCode)
		}

		data := map[string]any{
			"FirstName":     user.FirstName,
			"MovieTitle":    details.MovieTitle,
			"RoomName":      details.RoomName,
			"StartTime":     details.StartTime.Format(time.RFC1123),
			"Seats":         strings.Join(seatCodes, ", "),
			"TotalPrice":    purchase.TotalPrice(),
			"CreditApplied": purchase.CreditApplied,
			"AmountDue":     purchase.TotalPrice().Sub(purchase.CreditApplied),
		}

		err = app.mailer.Send(user.Email, "ticket_confirmation.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send confirmation email", "error", err, "user_id", purchase.UserID)
		}
	})
}

func (app *Application) GetUserTicketsHandler(w http.ResponseWriter, r *http.Request) {
	userID := app.contextGetUserId(r)

	tickets, err := app.ticketRepo.GetTicketsByUser(r.Context(), userID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.UserTicketsResponse{Tickets: make([]api.UserTicket, 0, len(tickets))}

	for _, t := range tickets {
		resp.Tickets = append(resp.Tickets, api.UserTicket{
			Id:         t.ID,
			Reference:  t.Reference.String(),
			MovieTitle: t.MovieTitle,
			RoomName:   t.RoomName,
			SeatCode:   t.SeatCode,
			StartTime:  t.StartTime,
			TicketType: string(t.Type),
			AmountPaid: t.AmountPaid,
			CreatedAt:  t.CreatedAt,
			Cancelled:  t.Cancelled,
			Used:       t.Used,
		})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
