package repository

import (
	"context"

	"github.com/cineflow/cineflow/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

// GetSeatMapByShowtime returns every seat of the showtime's room; a seat is
// available unless a non-cancelled ticket exists for it.
func (p *PostgresSeatRepository) GetSeatMapByShowtime(ctx context.Context, showtimeID int) (*domain.SeatMap, error) {
	query := `
		SELECT
			r.id,
			r.name,
			se.id,
			se.room_id,
			se.code,
			se.active,
			NOT EXISTS (
				SELECT 1 FROM tickets t
				WHERE t.showtime_id = s.id AND t.seat_id = se.id AND NOT t.cancelled
			) AS available
		FROM showtimes s
		JOIN rooms r ON s.room_id = r.id
		JOIN seats se ON se.room_id = r.id
		WHERE s.id = $1
		ORDER BY se.code
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seatMap := domain.SeatMap{ShowtimeID: showtimeID}

	for rows.Next() {
		var seat domain.SeatAvailability

		err = rows.Scan(
			&seatMap.RoomID,
			&seatMap.RoomName,
			&seat.ID,
			&seat.RoomID,
			&seat.Code,
			&seat.Active,
			&seat.Available,
		)
		if err != nil {
			return nil, err
		}

		seatMap.Seats = append(seatMap.Seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(seatMap.Seats) == 0 {
		return nil, domain.ErrRecordNotFound
	}

	return &seatMap, nil
}

func (p *PostgresSeatRepository) GetSeatsByRoomAndCodes(
	ctx context.Context,
	roomID int,
	codes []string) ([]domain.Seat, error) {

	query := `
		SELECT id, room_id, code, active
		FROM seats
		WHERE room_id = $1 AND code = ANY($2)
	`

	rows, err := p.db.Query(ctx, query, roomID, codes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0, len(codes))

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(&seat.ID, &seat.RoomID, &seat.Code, &seat.Active)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
