package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andrew766938/DASHA-FINAL/internal/database"
	"github.com/Andrew766938/DASHA-FINAL/internal/models"
)

func newCatalogWithMock(t *testing.T) (*CatalogService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	svc := NewCatalogService(
		database.NewTrainRepository(sqlxDB),
		database.NewWagonRepository(sqlxDB),
		database.NewSeatRepository(sqlxDB),
	)
	return svc, mock
}

func TestSearchTrips(t *testing.T) {
	svc, mock := newCatalogWithMock(t)

	departure := time.Date(2026, 9, 14, 8, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM trains`).
		WithArgs("Moscow", "Kazan").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "train_number", "route_from", "route_to", "departure_time",
			"arrival_time", "duration_hours", "base_fare", "is_active", "created_at",
		}).AddRow(
			int64(1), "016A", "Moscow", "Kazan", departure,
			departure.Add(12*time.Hour), 12, 1000.0, true, time.Now(),
		))

	mock.ExpectQuery(`SELECT (.+) FROM wagons`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "train_id", "wagon_number", "wagon_class", "total_seats",
			"fare_multiplier", "created_at",
		}).
			AddRow(int64(2), int64(1), 1, "platzkart", 54, 1.0, time.Now()).
			AddRow(int64(3), int64(1), 2, "coupe", 36, 1.5, time.Now()))

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(40))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	trips, err := svc.SearchTrips("Moscow", "Kazan")
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "016A", trips[0].Train.TrainNumber)
	assert.Equal(t, 52, trips[0].AvailableSeatCount)
	assert.Len(t, trips[0].Wagons, 2)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWagonsOfClass(t *testing.T) {
	svc, mock := newCatalogWithMock(t)

	t.Run("Unknown Class", func(t *testing.T) {
		_, err := svc.WagonsOfClass(1, "sleeper")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Class Matching Is Case Insensitive", func(t *testing.T) {
		departure := time.Date(2026, 9, 14, 8, 30, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT (.+) FROM trains`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "train_number", "route_from", "route_to", "departure_time",
				"arrival_time", "duration_hours", "base_fare", "is_active", "created_at",
			}).AddRow(
				int64(1), "016A", "Moscow", "Kazan", departure,
				departure.Add(12*time.Hour), 12, 1000.0, true, time.Now(),
			))

		mock.ExpectQuery(`SELECT (.+) FROM wagons`).
			WithArgs(int64(1), models.WagonClassCoupe).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "train_id", "wagon_number", "wagon_class", "total_seats",
				"fare_multiplier", "created_at",
			}).AddRow(int64(3), int64(1), 2, "coupe", 36, 1.5, time.Now()))

		wagons, err := svc.WagonsOfClass(1, "Coupe")
		require.NoError(t, err)
		require.Len(t, wagons, 1)
		assert.Equal(t, models.WagonClassCoupe, wagons[0].WagonClass)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWagonLayout(t *testing.T) {
	svc, mock := newCatalogWithMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM wagons`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "train_id", "wagon_number", "wagon_class", "total_seats",
			"fare_multiplier", "created_at",
		}).AddRow(int64(2), int64(1), 1, "suite", 18, 2.0, time.Now()))

	mock.ExpectQuery(`SELECT (.+) FROM seats`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "wagon_id", "seat_number", "status", "claim_token", "held_at", "created_at",
		}).
			AddRow(int64(5), int64(2), 1, "free", nil, nil, time.Now()).
			AddRow(int64(6), int64(2), 2, "sold", nil, nil, time.Now()))

	layout, err := svc.WagonLayout(2)
	require.NoError(t, err)
	assert.Equal(t, models.WagonClassSuite, layout.Wagon.WagonClass)
	require.Len(t, layout.Seats, 2)
	assert.Equal(t, models.SeatStatusFree, layout.Seats[0].Status)
	assert.Equal(t, models.SeatStatusSold, layout.Seats[1].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
