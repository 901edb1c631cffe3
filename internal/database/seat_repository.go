package database

import (
	"database/sql"
	"fmt"

	"github.com/Andrew766938/DASHA-FINAL/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SeatRepository owns per-seat availability state. The free -> held transition
// is a conditional update so the check and the mutation are one atomic step
// with respect to every other reservation attempt on the same seat.
type SeatRepository struct {
	db *sqlx.DB
}

// NewSeatRepository creates a new SeatRepository
func NewSeatRepository(db *sqlx.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

const seatColumns = `id, wagon_id, seat_number, status, claim_token, held_at, created_at`

// GetByID returns a single seat by ID
func (r *SeatRepository) GetByID(id int64) (*models.Seat, error) {
	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE id = $1`

	var seat models.Seat
	err := r.db.Get(&seat, query, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("seat %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seat: %w", err)
	}

	return &seat, nil
}

// ListByWagon returns every seat of a wagon in seat-number order.
func (r *SeatRepository) ListByWagon(wagonID int64) ([]models.Seat, error) {
	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE wagon_id = $1
		ORDER BY seat_number ASC`

	var seats []models.Seat
	if err := r.db.Select(&seats, query, wagonID); err != nil {
		return nil, fmt.Errorf("failed to fetch seats: %w", err)
	}

	return seats, nil
}

// ListAvailable returns the free seats of a wagon in seat-number order.
func (r *SeatRepository) ListAvailable(wagonID int64) ([]models.Seat, error) {
	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE wagon_id = $1 AND status = 'free'
		ORDER BY seat_number ASC`

	var seats []models.Seat
	if err := r.db.Select(&seats, query, wagonID); err != nil {
		return nil, fmt.Errorf("failed to fetch available seats: %w", err)
	}

	return seats, nil
}

// CountAvailable returns the number of free seats in a wagon. Never cached:
// availability changes far more often than the schedule does.
func (r *SeatRepository) CountAvailable(wagonID int64) (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM seats WHERE wagon_id = $1 AND status = 'free'`, wagonID)
	if err != nil {
		return 0, fmt.Errorf("failed to count available seats: %w", err)
	}
	return count, nil
}

// TryReserve atomically claims a free seat. It returns the claim token and
// true on success, or false when the seat is already held or sold. A conflict
// is a routine outcome, not an error.
func (r *SeatRepository) TryReserve(seatID int64) (uuid.UUID, bool, error) {
	token := uuid.New()

	query := `
		UPDATE seats
		SET status = 'held', claim_token = $2, held_at = NOW()
		WHERE id = $1 AND status = 'free'`

	result, err := r.db.Exec(query, seatID, token)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to reserve seat: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return uuid.Nil, false, nil
	}

	return token, true, nil
}

// Release transitions a held seat back to free. Fails with ErrInvalidState if
// the seat was not held, so callers check the return value rather than assume
// success.
func (r *SeatRepository) Release(seatID int64) error {
	query := `
		UPDATE seats
		SET status = 'free', claim_token = NULL, held_at = NULL
		WHERE id = $1 AND status = 'held'`

	result, err := r.db.Exec(query, seatID)
	if err != nil {
		return fmt.Errorf("failed to release seat: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("release seat %d: %w", seatID, models.ErrInvalidState)
	}

	return nil
}

// MarkSold makes a held seat permanently unavailable. A sold seat never
// returns to free.
func (r *SeatRepository) MarkSold(seatID int64) error {
	query := `
		UPDATE seats
		SET status = 'sold', claim_token = NULL
		WHERE id = $1 AND status = 'held'`

	result, err := r.db.Exec(query, seatID)
	if err != nil {
		return fmt.Errorf("failed to mark seat sold: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("mark seat %d sold: %w", seatID, models.ErrInvalidState)
	}

	return nil
}

// ReleaseOrphanHolds frees held seats that no pending ticket references.
// Safety cleanup for crashes between seat claim and ticket insert outside the
// booking transaction; normally a no-op.
func (r *SeatRepository) ReleaseOrphanHolds() (int, error) {
	query := `
		UPDATE seats
		SET status = 'free', claim_token = NULL, held_at = NULL
		WHERE status = 'held'
		  AND id NOT IN (SELECT seat_id FROM tickets WHERE status = 'pending')`

	result, err := r.db.Exec(query)
	if err != nil {
		return 0, fmt.Errorf("failed to release orphan holds: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return int(rowsAffected), nil
}
