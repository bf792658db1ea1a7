package domain

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// CreditValidity is how long a cancellation credit stays spendable.
	CreditValidity = 90 * 24 * time.Hour

	// FullRefundNotice is the minimum time before the showtime for a
	// cancellation to credit the full amount; later cancellations credit half.
	FullRefundNotice = 2 * time.Hour
)

var halfRate = decimal.New(5, -1)

// CreditEntry is one cancellation's store credit. Remaining decreases as the
// entry is drawn upon; the row is never deleted, it just expires out of the
// balance after CreditValidity.
type CreditEntry struct {
	TicketID    int
	CancelledAt time.Time
	Credited    decimal.Decimal
	Remaining   decimal.Decimal
	Redeemed    bool
}

// Expired reports whether the entry has aged out of the spendable balance.
func (e CreditEntry) Expired(now time.Time) bool {
	return e.CancelledAt.Before(now.Add(-CreditValidity))
}

// RefundAmount computes the credit for cancelling a ticket: the full amount
// paid when cancelled at least FullRefundNotice before the showtime, half
// otherwise. Callers must reject cancellations at or after the start time.
func RefundAmount(amountPaid decimal.Decimal, startTime, now time.Time) decimal.Decimal {
	if startTime.Sub(now) >= FullRefundNotice {
		return amountPaid
	}

	return amountPaid.Mul(halfRate).Round(2)
}

type CreditMutation struct {
	TicketID  int
	Remaining decimal.Decimal
	Redeemed  bool
}

type CreditDrawPlan struct {
	Drawn     decimal.Decimal
	Mutations []CreditMutation
}

// PlanCreditDraw decides which credit entries a purchase consumes and by how
// much, oldest entry first. It is a pure function over a snapshot of eligible
// entries; the caller applies the mutations inside the purchase transaction.
// The drawn total never exceeds the requested amount, and an entry is marked
// redeemed only when its remaining value drops to or below zero.
func PlanCreditDraw(entries []CreditEntry, amount decimal.Decimal) CreditDrawPlan {
	plan := CreditDrawPlan{Drawn: decimal.Zero}

	if amount.LessThanOrEqual(decimal.Zero) {
		return plan
	}

	eligible := make([]CreditEntry, len(entries))
	copy(eligible, entries)
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].CancelledAt.Before(eligible[j].CancelledAt)
	})

	needed := amount

	for _, entry := range eligible {
		if entry.Redeemed || entry.Remaining.LessThanOrEqual(decimal.Zero) {
			continue
		}

		if entry.Remaining.LessThanOrEqual(needed) {
			plan.Mutations = append(plan.Mutations, CreditMutation{
				TicketID:  entry.TicketID,
				Remaining: decimal.Zero,
				Redeemed:  true,
			})
			plan.Drawn = plan.Drawn.Add(entry.Remaining)
			needed = needed.Sub(entry.Remaining)
		} else {
			plan.Mutations = append(plan.Mutations, CreditMutation{
				TicketID:  entry.TicketID,
				Remaining: entry.Remaining.Sub(needed),
				Redeemed:  false,
			})
			plan.Drawn = plan.Drawn.Add(needed)
			needed = decimal.Zero
		}

		if needed.LessThanOrEqual(decimal.Zero) {
			break
		}
	}

	return plan
}

type CreditRepository interface {
	GetBalance(ctx context.Context, userID int, now time.Time) (decimal.Decimal, error)
	GetActiveEntriesByUser(ctx context.Context, userID int, now time.Time) ([]CreditEntry, error)
}
