package database

import (
	"database/sql"
	"fmt"

	"github.com/Andrew766938/DASHA-FINAL/internal/models"
	"github.com/jmoiron/sqlx"
)

// WagonRepository handles wagons database operations
type WagonRepository struct {
	db *sqlx.DB
}

// NewWagonRepository creates a new WagonRepository
func NewWagonRepository(db *sqlx.DB) *WagonRepository {
	return &WagonRepository{db: db}
}

const wagonColumns = `id, train_id, wagon_number, wagon_class, total_seats,
	   fare_multiplier, created_at`

// GetByID returns a single wagon by ID
func (r *WagonRepository) GetByID(id int64) (*models.Wagon, error) {
	query := `
		SELECT ` + wagonColumns + `
		FROM wagons
		WHERE id = $1`

	var wagon models.Wagon
	err := r.db.Get(&wagon, query, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("wagon %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wagon: %w", err)
	}

	return &wagon, nil
}

// GetByTrainID returns all wagons of a train ordered by wagon number.
func (r *WagonRepository) GetByTrainID(trainID int64) ([]models.Wagon, error) {
	query := `
		SELECT ` + wagonColumns + `
		FROM wagons
		WHERE train_id = $1
		ORDER BY wagon_number ASC`

	var wagons []models.Wagon
	if err := r.db.Select(&wagons, query, trainID); err != nil {
		return nil, fmt.Errorf("failed to fetch wagons: %w", err)
	}

	return wagons, nil
}

// GetByClass returns wagons of a train filtered to one wagon class.
func (r *WagonRepository) GetByClass(trainID int64, class models.WagonClass) ([]models.Wagon, error) {
	query := `
		SELECT ` + wagonColumns + `
		FROM wagons
		WHERE train_id = $1 AND wagon_class = $2
		ORDER BY wagon_number ASC`

	var wagons []models.Wagon
	if err := r.db.Select(&wagons, query, trainID, class); err != nil {
		return nil, fmt.Errorf("failed to fetch wagons by class: %w", err)
	}

	return wagons, nil
}
