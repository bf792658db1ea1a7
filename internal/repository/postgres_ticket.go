package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cineflow/cineflow/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

// CreatePurchase issues every ticket of the purchase, drawing from the buyer's
// store credit first when requested, all inside one transaction. Seat
// occupancy is enforced by the partial unique index on (showtime_id, seat_id):
// of two concurrent purchases for the same seat exactly one insert succeeds
// and the loser's transaction rolls back, credit draw included.
func (p *PostgresTicketRepository) CreatePurchase(ctx context.Context, purchase *domain.Purchase) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		purchase.CreditApplied = decimal.Zero

		total := purchase.TotalPrice()

		if purchase.UseCredit && total.GreaterThan(decimal.Zero) {
			entries, err := lockCreditEntries(ctx, tx, purchase.UserID, purchase.Now)
			if err != nil {
				return err
			}

			plan := domain.PlanCreditDraw(entries, total)

			err = applyCreditMutations(ctx, tx, plan.Mutations)
			if err != nil {
				return err
			}

			purchase.CreditApplied = plan.Drawn
		}

		query := `
			INSERT INTO tickets (reference, showtime_id, seat_id, user_id, ticket_type, amount_paid, payment_method, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`

		for i := range purchase.Tickets {
			ticket := &purchase.Tickets[i]

			err := tx.QueryRow(
				ctx,
				query,
				ticket.Reference,
				ticket.ShowtimeID,
				ticket.SeatID,
				ticket.UserID,
				ticket.Type,
				ticket.AmountPaid.String(),
				purchase.PaymentMethod,
				ticket.CreatedAt,
			).Scan(&ticket.ID)

			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
					return fmt.Errorf("seat %s: %w", ticket.SeatCode, domain.ErrSeatOccupied)
				}

				return err
			}
		}

		return nil
	})
}

// lockCreditEntries snapshots the buyer's spendable credit entries, oldest
// first, locking them so a concurrent purchase cannot draw from the same
// entry until this transaction finishes.
func lockCreditEntries(ctx context.Context, tx pgx.Tx, userID int, now time.Time) ([]domain.CreditEntry, error) {
	query := `
		SELECT ct.ticket_id, ct.cancelled_at, ct.credited_amount, ct.remaining_amount, ct.redeemed
		FROM cancelled_tickets ct
		JOIN tickets t ON ct.ticket_id = t.id
		WHERE t.user_id = $1
			AND NOT ct.redeemed
			AND ct.cancelled_at >= $2
		ORDER BY ct.cancelled_at
		FOR UPDATE OF ct
	`

	rows, err := tx.Query(ctx, query, userID, now.Add(-domain.CreditValidity))
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

func applyCreditMutations(ctx context.Context, tx pgx.Tx, mutations []domain.CreditMutation) error {
	query := `
		UPDATE cancelled_tickets
		SET remaining_amount = $1, redeemed = $2
		WHERE ticket_id = $3
	`

	for _, m := range mutations {
		result, err := tx.Exec(ctx, query, m.Remaining.String(), m.Redeemed, m.TicketID)
		if err != nil {
			return err
		}

		if result.RowsAffected() == 0 {
			return domain.ErrEditConflict
		}
	}

	return nil
}

type cancellationCandidate struct {
	userID     int
	amountPaid decimal.Decimal
	startTime  time.Time
	cancelled  bool
	used       bool
}

// CancelTickets cancels a batch of the requester's tickets, crediting each
// one's refund to the store-credit ledger. Any invalid ticket rejects the
// whole batch. All time comparisons use the single now snapshot taken by the
// caller.
func (p *PostgresTicketRepository) CancelTickets(
	ctx context.Context,
	ticketIDs []int,
	requesterID int,
	now time.Time) (*domain.CancellationResult, error) {

	result := domain.CancellationResult{CreditedTotal: decimal.Zero}

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		// The state flags come from the locked tickets row itself, not from
		// joins against the side tables. A join reads the statement's
		// snapshot, which can miss a check-in that committed while this
		// query was waiting on the row lock; the locked row is always
		// re-read at its latest committed version.
		query := `
			SELECT
				t.id,
				t.user_id,
				t.amount_paid,
				s.start_time,
				t.cancelled,
				t.used
			FROM tickets t
			JOIN showtimes s ON t.showtime_id = s.id
			WHERE t.id = ANY($1)
			FOR UPDATE OF t
		`

		rows, err := tx.Query(ctx, query, ticketIDs)
		if err != nil {
			return err
		}

		candidates := make(map[int]cancellationCandidate)

		for rows.Next() {
			var id int
			var candidate cancellationCandidate
			var amountPaid pgtype.Numeric

			err = rows.Scan(
				&id,
				&candidate.userID,
				&amountPaid,
				&candidate.startTime,
				&candidate.cancelled,
				&candidate.used,
			)
			if err != nil {
				rows.Close()
				return err
			}

			candidate.amountPaid = numericToDecimal(amountPaid)
			candidates[id] = candidate
		}
		rows.Close()

		if err = rows.Err(); err != nil {
			return err
		}

		for _, id := range ticketIDs {
			candidate, ok := candidates[id]

			switch {
			case !ok:
				return fmt.Errorf("ticket %d: %w", id, domain.ErrRecordNotFound)
			case candidate.userID != requesterID:
				return fmt.Errorf("ticket %d: %w", id, domain.ErrNotTicketOwner)
			case candidate.cancelled:
				return fmt.Errorf("ticket %d: %w", id, domain.ErrAlreadyCancelled)
			case candidate.used:
				return fmt.Errorf("ticket %d: %w", id, domain.ErrAlreadyUsed)
			case !candidate.startTime.After(now):
				return fmt.Errorf("ticket %d: %w", id, domain.ErrShowtimeStarted)
			}

			credit := domain.RefundAmount(candidate.amountPaid, candidate.startTime, now)

			entry := domain.CreditEntry{
				TicketID:    id,
				CancelledAt: now,
				Credited:    credit,
				Remaining:   credit,
				Redeemed:    false,
			}

			err = insertCancelledTicket(ctx, tx, entry)
			if err != nil {
				return err
			}

			result.Credits = append(result.Credits, entry)
			result.CreditedTotal = result.CreditedTotal.Add(credit)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &result, nil
}

func insertCancelledTicket(ctx context.Context, tx pgx.Tx, entry domain.CreditEntry) error {
	query := `
		INSERT INTO cancelled_tickets (ticket_id, cancelled_at, credited_amount, remaining_amount, redeemed)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := tx.Exec(
		ctx,
		query,
		entry.TicketID,
		entry.CancelledAt,
		entry.Credited.String(),
		entry.Remaining.String(),
		entry.Redeemed,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("ticket %d: %w", entry.TicketID, domain.ErrAlreadyCancelled)
		}

		return err
	}

	// The denormalized flag keeps the partial unique index on live tickets
	// accurate, so the seat becomes sellable again right away.
	_, err = tx.Exec(ctx, `UPDATE tickets SET cancelled = true WHERE id = $1`, entry.TicketID)

	return err
}

// CheckIn marks a ticket as used at the door. A cancelled ticket cannot be
// used and a used ticket cannot be checked in twice.
func (p *PostgresTicketRepository) CheckIn(
	ctx context.Context,
	ticketID,
	usherID int,
	now time.Time) (*domain.CheckIn, error) {

	checkIn := domain.CheckIn{TicketID: ticketID, UsherID: usherID, UsedAt: now}

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		// Same locked-row read as CancelTickets: the flags on the tickets row
		// are authoritative, side-table joins could see a stale snapshot.
		query := `
			SELECT t.cancelled, t.used
			FROM tickets t
			WHERE t.id = $1
			FOR UPDATE OF t
		`

		var cancelled, used bool

		err := tx.QueryRow(ctx, query, ticketID).Scan(&cancelled, &used)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		switch {
		case cancelled:
			return domain.ErrAlreadyCancelled
		case used:
			return domain.ErrAlreadyUsed
		}

		_, err = tx.Exec(
			ctx,
			`INSERT INTO used_tickets (ticket_id, usher_id, used_at) VALUES ($1, $2, $3)`,
			ticketID, usherID, now,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrAlreadyUsed
			}

			return err
		}

		// Flipping the flag in the same transaction is what lets a
		// concurrent cancellation of this ticket observe the check-in once
		// its row lock is granted.
		_, err = tx.Exec(ctx, `UPDATE tickets SET used = true WHERE id = $1`, ticketID)

		return err
	})

	if err != nil {
		return nil, err
	}

	return &checkIn, nil
}

func (p *PostgresTicketRepository) GetTicketsByUser(ctx context.Context, userID int) ([]domain.UserTicket, error) {
	query := `
		SELECT
			t.id,
			t.reference,
			m.title,
			r.name,
			se.code,
			s.start_time,
			t.ticket_type,
			t.amount_paid,
			t.created_at,
			t.cancelled,
			t.used
		FROM tickets t
		JOIN showtimes s ON t.showtime_id = s.id
		JOIN movies m ON s.movie_id = m.id
		JOIN rooms r ON s.room_id = r.id
		JOIN seats se ON t.seat_id = se.id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC, t.id DESC
	`

	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.UserTicket, 0)

	for rows.Next() {
		var ticket domain.UserTicket
		var amountPaid pgtype.Numeric

		err = rows.Scan(
			&ticket.ID,
			&ticket.Reference,
			&ticket.MovieTitle,
			&ticket.RoomName,
			&ticket.SeatCode,
			&ticket.StartTime,
			&ticket.Type,
			&amountPaid,
			&ticket.CreatedAt,
			&ticket.Cancelled,
			&ticket.Used,
		)
		if err != nil {
			return nil, err
		}

		ticket.AmountPaid = numericToDecimal(amountPaid)
		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}
