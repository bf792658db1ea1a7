package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TicketType string

const (
	TicketTypeAdult TicketType = "adult"
	TicketTypeChild TicketType = "child"
)

type Ticket struct {
	ID         int
	Reference  uuid.UUID
	ShowtimeID int
	SeatID     int
	SeatCode   string
	UserID     int
	Type       TicketType
	AmountPaid decimal.Decimal
	CreatedAt  time.Time
}

// Purchase is the unit of work for a multi-seat sale. Tickets are inserted in
// the order given here; CreditApplied is filled in by the repository once the
// transaction commits.
type Purchase struct {
	ShowtimeID    int
	UserID        int
	UseCredit     bool
	PaymentMethod string
	Now           time.Time
	Tickets       []Ticket
	CreditApplied decimal.Decimal
}

// TicketPrice looks up the catalog price for a ticket type in the showtime's
// room type. The returned amount is what the ticket records as paid; store
// credit never changes it.
func TicketPrice(details *ShowtimeDetails, ticketType TicketType) decimal.Decimal {
	if ticketType == TicketTypeChild {
		return details.ChildPrice
	}

	return details.AdultPrice
}

// NewPurchase prices one ticket per seat, in seat order, defaulting to the
// adult tariff when no type was supplied for a seat code.
func NewPurchase(
	details *ShowtimeDetails,
	seats []Seat,
	typeBySeat map[string]TicketType,
	userID int,
	useCredit bool,
	paymentMethod string,
	now time.Time,
) *Purchase {

	tickets := make([]Ticket, 0, len(seats))

	for _, seat := range seats {
		ticketType, ok := typeBySeat[seat.Code]
		if !ok {
			ticketType = TicketTypeAdult
		}

		tickets = append(tickets, Ticket{
			Reference:  uuid.New(),
			ShowtimeID: details.ID,
			SeatID:     seat.ID,
			SeatCode:   seat.Code,
			UserID:     userID,
			Type:       ticketType,
			AmountPaid: TicketPrice(details, ticketType),
			CreatedAt:  now,
		})
	}

	return &Purchase{
		ShowtimeID:    details.ID,
		UserID:        userID,
		UseCredit:     useCredit,
		PaymentMethod: paymentMethod,
		Now:           now,
		Tickets:       tickets,
	}
}

// TotalPrice sums the catalog price of every ticket in the purchase.
func (p *Purchase) TotalPrice() decimal.Decimal {
	total := decimal.Zero

	for _, t := range p.Tickets {
		total = total.Add(t.AmountPaid)
	}

	return total
}

// UserTicket is the listing projection for a buyer's tickets.
type UserTicket struct {
	ID         int
	Reference  uuid.UUID
	MovieTitle string
	RoomName   string
	SeatCode   string
	StartTime  time.Time
	Type       TicketType
	AmountPaid decimal.Decimal
	CreatedAt  time.Time
	Cancelled  bool
	Used       bool
}

// CheckIn marks a ticket as used at the door. Once present the ticket is
// terminal and can no longer be cancelled.
type CheckIn struct {
	TicketID int
	UsherID  int
	UsedAt   time.Time
}

type CancellationResult struct {
	CreditedTotal decimal.Decimal
	Credits       []CreditEntry
}

type TicketRepository interface {
	CreatePurchase(ctx context.Context, purchase *Purchase) error
	GetTicketsByUser(ctx context.Context, userID int) ([]UserTicket, error)
	CancelTickets(ctx context.Context, ticketIDs []int, requesterID int, now time.Time) (*CancellationResult, error)
	CheckIn(ctx context.Context, ticketID, usherID int, now time.Time) (*CheckIn, error)
}
