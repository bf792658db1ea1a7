package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cineflow/cineflow/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetDetailsByID(ctx context.Context, id int) (*domain.ShowtimeDetails, error) {
	query := `
		SELECT
			s.id,
			m.id,
			m.title,
			m.duration_minutes,
			r.id,
			r.name,
			rt.name,
			rt.adult_price,
			rt.child_price,
			s.start_time,
			s.active
		FROM showtimes s
		JOIN movies m ON s.movie_id = m.id
		JOIN rooms r ON s.room_id = r.id
		JOIN room_types rt ON r.room_type_id = rt.id
		WHERE s.id = $1
	`

	var details domain.ShowtimeDetails
	var adultPrice, childPrice pgtype.Numeric

	err := p.db.QueryRow(ctx, query, id).Scan(
		&details.ID,
		&details.MovieID,
		&details.MovieTitle,
		&details.MovieDuration,
		&details.RoomID,
		&details.RoomName,
		&details.RoomType,
		&adultPrice,
		&childPrice,
		&details.StartTime,
		&details.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	details.AdultPrice = numericToDecimal(adultPrice)
	details.ChildPrice = numericToDecimal(childPrice)

	return &details, nil
}

// GetActiveSlotsByRoom returns the active showtimes of a room together with
// each one's movie runtime. The overlap decision happens in application code
// because every slot's buffer depends on its own movie's duration.
func (p *PostgresShowtimeRepository) GetActiveSlotsByRoom(
	ctx context.Context,
	roomID,
	excludeShowtimeID int) ([]domain.ShowtimeSlot, error) {

	query := `
		SELECT s.id, s.start_time, m.duration_minutes
		FROM showtimes s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.room_id = $1 AND s.active AND s.id != $2
	`

	rows, err := p.db.Query(ctx, query, roomID, excludeShowtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]domain.ShowtimeSlot, 0)

	for rows.Next() {
		var slot domain.ShowtimeSlot

		err = rows.Scan(&slot.ID, &slot.StartTime, &slot.MovieDuration)
		if err != nil {
			return nil, err
		}

		slots = append(slots, slot)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

// roomScheduleLockClass namespaces the advisory locks taken for schedule
// writes, keyed by room id.
const roomScheduleLockClass = 1

func lockRoomSchedule(ctx context.Context, tx pgx.Tx, roomID int) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, roomScheduleLockClass, roomID)
	return err
}

// roomHasConflict re-runs the overlap check inside the writing transaction.
// The application-level check before the write reads a plain snapshot, which
// two concurrent schedule writes for the same room could both pass; under the
// room's advisory lock this check is serialized.
func roomHasConflict(
	ctx context.Context,
	tx pgx.Tx,
	roomID,
	movieID,
	excludeShowtimeID int,
	startTime time.Time) (bool, error) {

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM showtimes s
			JOIN movies m ON s.movie_id = m.id
			WHERE s.room_id = $1
				AND s.active
				AND s.id != $2
				AND s.start_time < $3 + make_interval(mins => (SELECT duration_minutes FROM movies WHERE id = $4) + $5)
				AND $3 < s.start_time + make_interval(mins => m.duration_minutes + $5)
		)
	`

	var conflict bool

	err := tx.QueryRow(
		ctx,
		query,
		roomID,
		excludeShowtimeID,
		startTime,
		movieID,
		int(domain.TurnaroundBuffer.Minutes()),
	).Scan(&conflict)

	return conflict, err
}

func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := lockRoomSchedule(ctx, tx, showtime.RoomID)
		if err != nil {
			return err
		}

		conflict, err := roomHasConflict(ctx, tx, showtime.RoomID, showtime.MovieID, 0, showtime.StartTime)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrScheduleConflict
		}

		query := `
			INSERT INTO showtimes (movie_id, room_id, start_time, active)
			VALUES ($1, $2, $3, true)
			RETURNING id, active
		`

		return tx.QueryRow(
			ctx,
			query,
			showtime.MovieID,
			showtime.RoomID,
			showtime.StartTime).Scan(&showtime.ID, &showtime.Active)
	})
}

func (p *PostgresShowtimeRepository) Update(ctx context.Context, showtime *domain.Showtime) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		// A deactivating update releases the room instead of claiming it, so
		// only an active target needs the schedule guard.
		if showtime.Active {
			err := lockRoomSchedule(ctx, tx, showtime.RoomID)
			if err != nil {
				return err
			}

			conflict, err := roomHasConflict(ctx, tx, showtime.RoomID, showtime.MovieID, showtime.ID, showtime.StartTime)
			if err != nil {
				return err
			}
			if conflict {
				return domain.ErrScheduleConflict
			}
		}

		query := `
			UPDATE showtimes
			SET movie_id = $1, room_id = $2, start_time = $3, active = $4
			WHERE id = $5
		`

		result, err := tx.Exec(
			ctx,
			query,
			showtime.MovieID,
			showtime.RoomID,
			showtime.StartTime,
			showtime.Active,
			showtime.ID,
		)
		if err != nil {
			return err
		}

		if result.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}

// Deactivate soft deletes a showtime. A showtime with sold tickets stays
// active; deactivating it would strand the buyers.
func (p *PostgresShowtimeRepository) Deactivate(ctx context.Context, id int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var ticketCount int

		err := tx.QueryRow(
			ctx,
			`SELECT COUNT(*) FROM tickets WHERE showtime_id = $1 AND NOT cancelled`,
			id).Scan(&ticketCount)
		if err != nil {
			return err
		}

		if ticketCount > 0 {
			return domain.ErrShowtimeHasTickets
		}

		result, err := tx.Exec(ctx, `UPDATE showtimes SET active = false WHERE id = $1`, id)
		if err != nil {
			return err
		}

		if result.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}
