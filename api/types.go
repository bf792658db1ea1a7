// Package api holds the request and response types of the HTTP surface.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type CreateSessionRequest struct {
	UserId int `json:"userId" validate:"required,min=1"`
}

type PurchaseTicketsRequest struct {
	SeatCodes     []string          `json:"seatCodes" validate:"required,min=1,max=10,unique,dive,seat_code"`
	TicketTypes   map[string]string `json:"ticketTypes" validate:"omitempty,dive,ticket_type"`
	UseCredit     bool              `json:"useCredit"`
	PaymentMethod string            `json:"paymentMethod" validate:"omitempty,max=30"`
}

type TicketSummary struct {
	Id         int             `json:"id"`
	Reference  string          `json:"reference"`
	SeatCode   string          `json:"seatCode"`
	TicketType string          `json:"ticketType"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
}

type PurchaseResponse struct {
	ShowtimeId    int             `json:"showtimeId"`
	Tickets       []TicketSummary `json:"tickets"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	CreditApplied decimal.Decimal `json:"creditApplied"`
	AmountDue     decimal.Decimal `json:"amountDue"`
	PaymentMethod string          `json:"paymentMethod"`
}

type UserTicket struct {
	Id         int             `json:"id"`
	Reference  string          `json:"reference"`
	MovieTitle string          `json:"movieTitle"`
	RoomName   string          `json:"roomName"`
	SeatCode   string          `json:"seatCode"`
	StartTime  time.Time       `json:"startTime"`
	TicketType string          `json:"ticketType"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	CreatedAt  time.Time       `json:"createdAt"`
	Cancelled  bool            `json:"cancelled"`
	Used       bool            `json:"used"`
}

type UserTicketsResponse struct {
	Tickets []UserTicket `json:"tickets"`
}

type CancelTicketsRequest struct {
	TicketIds []int `json:"ticketIds" validate:"required,min=1,max=20,unique,dive,min=1"`
}

type CreditEntry struct {
	TicketId    int             `json:"ticketId"`
	CancelledAt time.Time       `json:"cancelledAt"`
	Credited    decimal.Decimal `json:"credited"`
	Remaining   decimal.Decimal `json:"remaining"`
	Redeemed    bool            `json:"redeemed"`
}

type CancellationResponse struct {
	CreditedTotal decimal.Decimal `json:"creditedTotal"`
	Credits       []CreditEntry   `json:"credits"`
}

type CreditBalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
	Entries []CreditEntry   `json:"entries"`
}

type SeatStatus struct {
	Code      string `json:"code"`
	Active    bool   `json:"active"`
	Available bool   `json:"available"`
}

type SeatMapResponse struct {
	ShowtimeId int          `json:"showtimeId"`
	RoomName   string       `json:"roomName"`
	Seats      []SeatStatus `json:"seats"`
}

type CreateShowtimeRequest struct {
	MovieId   int       `json:"movieId" validate:"required,min=1"`
	RoomId    int       `json:"roomId" validate:"required,min=1"`
	StartTime time.Time `json:"startTime" validate:"required"`
}

type UpdateShowtimeRequest struct {
	MovieId   int       `json:"movieId" validate:"required,min=1"`
	RoomId    int       `json:"roomId" validate:"required,min=1"`
	StartTime time.Time `json:"startTime" validate:"required"`
	Active    *bool     `json:"active"`
}

type ShowtimeResponse struct {
	Id        int       `json:"id"`
	MovieId   int       `json:"movieId"`
	RoomId    int       `json:"roomId"`
	StartTime time.Time `json:"startTime"`
	Active    bool      `json:"active"`
}

type CheckInResponse struct {
	TicketId int       `json:"ticketId"`
	UsedAt   time.Time `json:"usedAt"`
}
