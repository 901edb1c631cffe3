package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Andrew766938/DASHA-FINAL/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TicketRepository handles tickets database operations. The seat-state
// transition backing a ticket and the ticket row itself always move inside
// one transaction: a crash can never leave a held seat without a ticket or a
// ticket whose seat is still free.
type TicketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketColumns = `id, train_id, wagon_id, seat_id, passenger_name,
	   passenger_email, passenger_phone, discount_class, discount_percent,
	   base_fare, final_fare, ticket_number, status, departure_time,
	   arrival_time, created_at, paid_at`

// CreateWithReservation claims the seat and inserts the pending ticket in one
// transaction. If the seat is not free the whole operation aborts with
// ErrSeatUnavailable and no ticket exists.
//
// The ticket number is {trainNumber}-{wagonNumber}-{seatNumber}-{sequence};
// the sequence comes from ticket_booking_seq so collisions are structurally
// impossible.
func (r *TicketRepository) CreateWithReservation(ticket *models.Ticket, trainNumber string, wagonNumber, seatNumber int) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Atomic claim: check and mutation are one step for all racing callers.
	token := uuid.New()
	result, err := tx.Exec(`
		UPDATE seats
		SET status = 'held', claim_token = $2, held_at = NOW()
		WHERE id = $1 AND status = 'free'
	`, ticket.SeatID, token)
	if err != nil {
		return fmt.Errorf("failed to reserve seat: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("seat %d: %w", ticket.SeatID, models.ErrSeatUnavailable)
	}

	var seq int64
	if err := tx.Get(&seq, `SELECT nextval('ticket_booking_seq')`); err != nil {
		return fmt.Errorf("failed to advance booking sequence: %w", err)
	}
	ticket.TicketNumber = fmt.Sprintf("%s-%d-%d-%06d", trainNumber, wagonNumber, seatNumber, seq)
	ticket.Status = models.TicketStatusPending

	err = tx.QueryRow(`
		INSERT INTO tickets (
			train_id, wagon_id, seat_id, passenger_name, passenger_email,
			passenger_phone, discount_class, discount_percent, base_fare,
			final_fare, ticket_number, status, departure_time, arrival_time,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		RETURNING id, created_at
	`,
		ticket.TrainID, ticket.WagonID, ticket.SeatID,
		ticket.PassengerName, ticket.PassengerEmail, ticket.PassengerPhone,
		ticket.DiscountClass, ticket.DiscountPercent, ticket.BaseFare,
		ticket.FinalFare, ticket.TicketNumber, ticket.Status,
		ticket.DepartureTime, ticket.ArrivalTime,
	).Scan(&ticket.ID, &ticket.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	return nil
}

// GetByID returns a single ticket by ID
func (r *TicketRepository) GetByID(id int64) (*models.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE id = $1`

	var ticket models.Ticket
	err := r.db.Get(&ticket, query, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("ticket %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticket: %w", err)
	}

	return &ticket, nil
}

// GetByPassengerEmail returns all tickets of a passenger, newest first.
func (r *TicketRepository) GetByPassengerEmail(email string) ([]models.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE LOWER(passenger_email) = LOWER(TRIM($1))
		ORDER BY created_at DESC`

	var tickets []models.Ticket
	if err := r.db.Select(&tickets, query, email); err != nil {
		return nil, fmt.Errorf("failed to fetch passenger tickets: %w", err)
	}

	return tickets, nil
}

// GetItinerary returns the ticket joined with its train, wagon and seat for
// rendering collaborators.
func (r *TicketRepository) GetItinerary(id int64) (*models.TicketItinerary, error) {
	query := `
		SELECT t.id, t.train_id, t.wagon_id, t.seat_id, t.passenger_name,
		       t.passenger_email, t.passenger_phone, t.discount_class,
		       t.discount_percent, t.base_fare, t.final_fare, t.ticket_number,
		       t.status, t.departure_time, t.arrival_time, t.created_at, t.paid_at,
		       tr.train_number, tr.route_from, tr.route_to,
		       w.wagon_number, w.wagon_class, s.seat_number
		FROM tickets t
		JOIN trains tr ON tr.id = t.train_id
		JOIN wagons w ON w.id = t.wagon_id
		JOIN seats s ON s.id = t.seat_id
		WHERE t.id = $1`

	var itinerary models.TicketItinerary
	err := r.db.Get(&itinerary, query, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("ticket %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticket itinerary: %w", err)
	}

	return &itinerary, nil
}

// MarkPaid flips the ticket to paid and marks its seat sold, as one atomic
// unit. Returns ErrAlreadyPaid on a paid ticket and ErrInvalidState on a
// released one, changing nothing in either case.
func (r *TicketRepository) MarkPaid(id int64) (*models.Ticket, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seatID int64
	err = tx.QueryRow(`
		UPDATE tickets
		SET status = 'paid', paid_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING seat_id
	`, id).Scan(&seatID)
	if err == sql.ErrNoRows {
		return nil, r.explainTransitionFailure(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark ticket paid: %w", err)
	}

	result, err := tx.Exec(`
		UPDATE seats
		SET status = 'sold', claim_token = NULL
		WHERE id = $1 AND status = 'held'
	`, seatID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark seat sold: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, fmt.Errorf("seat %d not held by ticket %d: %w", seatID, id, models.ErrInvalidState)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	return r.GetByID(id)
}

// Release cancels a pending ticket and frees its seat, as one atomic unit.
// Used both by explicit cancellation and by the stale-hold sweeper.
func (r *TicketRepository) Release(id int64) (*models.Ticket, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seatID int64
	err = tx.QueryRow(`
		UPDATE tickets
		SET status = 'released'
		WHERE id = $1 AND status = 'pending'
		RETURNING seat_id
	`, id).Scan(&seatID)
	if err == sql.ErrNoRows {
		return nil, r.explainTransitionFailure(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to release ticket: %w", err)
	}

	result, err := tx.Exec(`
		UPDATE seats
		SET status = 'free', claim_token = NULL, held_at = NULL
		WHERE id = $1 AND status = 'held'
	`, seatID)
	if err != nil {
		return nil, fmt.Errorf("failed to free seat: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, fmt.Errorf("seat %d not held by ticket %d: %w", seatID, id, models.ErrInvalidState)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit release: %w", err)
	}

	return r.GetByID(id)
}

// GetExpiredPending returns pending tickets whose booking is older than the
// cutoff, oldest first, for the stale-hold sweeper.
func (r *TicketRepository) GetExpiredPending(cutoff time.Time, limit int) ([]models.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at ASC
		LIMIT $2`

	var tickets []models.Ticket
	if err := r.db.Select(&tickets, query, cutoff, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch expired pending tickets: %w", err)
	}

	return tickets, nil
}

// explainTransitionFailure classifies why a conditional status update matched
// no row: absent ticket, already paid, or already released.
func (r *TicketRepository) explainTransitionFailure(id int64) error {
	var status models.TicketStatus
	err := r.db.Get(&status, `SELECT status FROM tickets WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("ticket %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch ticket status: %w", err)
	}

	switch status {
	case models.TicketStatusPaid:
		return fmt.Errorf("ticket %d: %w", id, models.ErrAlreadyPaid)
	default:
		return fmt.Errorf("ticket %d in status %q: %w", id, status, models.ErrInvalidState)
	}
}
