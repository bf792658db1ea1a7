package repository

import (
	"context"
	"time"

	"github.com/cineflow/cineflow/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresCreditRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCreditRepository(db *pgxpool.Pool) *PostgresCreditRepository {
	return &PostgresCreditRepository{
		db: db,
	}
}

// GetBalance sums the remaining value of the user's non-redeemed credit
// entries still inside the validity window.
func (p *PostgresCreditRepository) GetBalance(ctx context.Context, userID int, now time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(ct.remaining_amount), 0)
		FROM cancelled_tickets ct
		JOIN tickets t ON ct.ticket_id = t.id
		WHERE t.user_id = $1
			AND NOT ct.redeemed
			AND ct.cancelled_at >= $2
	`

	var balance pgtype.Numeric

	err := p.db.QueryRow(ctx, query, userID, now.Add(-domain.CreditValidity)).Scan(&balance)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(balance), nil
}

func (p *PostgresCreditRepository) GetActiveEntriesByUser(
	ctx context.Context,
	userID int,
	now time.Time) ([]domain.CreditEntry, error) {

	query := `
		SELECT ct.ticket_id, ct.cancelled_at, ct.credited_amount, ct.remaining_amount, ct.redeemed
		FROM cancelled_tickets ct
		JOIN tickets t ON ct.ticket_id = t.id
		WHERE t.user_id = $1
			AND NOT ct.redeemed
			AND ct.cancelled_at >= $2
		ORDER BY ct.cancelled_at
	`

	rows, err := p.db.Query(ctx, query, userID, now.Add(-domain.CreditValidity))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.CreditEntry, 0)

	for rows.Next() {
		var entry domain.CreditEntry
		var credited, remaining pgtype.Numeric

		err = rows.Scan(&entry.TicketID, &entry.CancelledAt, &credited, &remaining, &entry.Redeemed)
		if err != nil {
			return nil, err
		}

		entry.Credited = numericToDecimal(credited)
		entry.Remaining = numericToDecimal(remaining)

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
