package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Andrew766938/DASHA-FINAL/internal/models"
	"github.com/jmoiron/sqlx"
)

// TrainRepository handles trains database operations
type TrainRepository struct {
	db *sqlx.DB
}

// NewTrainRepository creates a new TrainRepository
func NewTrainRepository(db *sqlx.DB) *TrainRepository {
	return &TrainRepository{db: db}
}

const trainColumns = `id, train_number, route_from, route_to, departure_time,
	   arrival_time, duration_hours, base_fare, is_active, created_at`

// GetByID returns an active train. Inactive trains are treated as absent.
func (r *TrainRepository) GetByID(id int64) (*models.Train, error) {
	query := `
		SELECT ` + trainColumns + `
		FROM trains
		WHERE id = $1 AND is_active = TRUE`

	var train models.Train
	err := r.db.Get(&train, query, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("train %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch train: %w", err)
	}

	return &train, nil
}

// Search returns active trains between two cities, matched case-insensitively,
// ordered by departure time then train number so results are deterministic.
func (r *TrainRepository) Search(routeFrom, routeTo string) ([]models.Train, error) {
	query := `
		SELECT ` + trainColumns + `
		FROM trains
		WHERE LOWER(route_from) = LOWER(TRIM($1))
		  AND LOWER(route_to) = LOWER(TRIM($2))
		  AND is_active = TRUE
		ORDER BY departure_time ASC, train_number ASC`

	var trains []models.Train
	if err := r.db.Select(&trains, query, routeFrom, routeTo); err != nil {
		return nil, fmt.Errorf("failed to search trains: %w", err)
	}

	return trains, nil
}

// ListActive returns all active trains ordered by departure time.
func (r *TrainRepository) ListActive() ([]models.Train, error) {
	query := `
		SELECT ` + trainColumns + `
		FROM trains
		WHERE is_active = TRUE
		ORDER BY departure_time ASC, train_number ASC`

	var trains []models.Train
	if err := r.db.Select(&trains, query); err != nil {
		return nil, fmt.Errorf("failed to list trains: %w", err)
	}

	return trains, nil
}

// DeactivateDeparted flips the active flag on trains whose departure time has
// passed. Returns the number of trains deactivated.
func (r *TrainRepository) DeactivateDeparted(now time.Time) (int, error) {
	query := `
		UPDATE trains
		SET is_active = FALSE
		WHERE is_active = TRUE AND departure_time < $1`

	result, err := r.db.Exec(query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate departed trains: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return int(rowsAffected), nil
}
