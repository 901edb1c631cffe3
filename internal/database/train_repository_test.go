package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andrew766938/DASHA-FINAL/internal/models"
)

func newTrainRepoWithMock(t *testing.T) (*TrainRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewTrainRepository(sqlxDB), mock
}

func trainRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "train_number", "route_from", "route_to", "departure_time",
		"arrival_time", "duration_hours", "base_fare", "is_active", "created_at",
	})
	departure := time.Date(2026, 9, 14, 8, 30, 0, 0, time.UTC)
	for _, id := range ids {
		rows.AddRow(
			id, "016A", "Moscow", "Kazan", departure,
			departure.Add(12*time.Hour), 12, 1000.0, true, time.Now(),
		)
	}
	return rows
}

func TestGetTrainByID(t *testing.T) {
	repo, mock := newTrainRepoWithMock(t)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM trains`).
			WithArgs(int64(1)).
			WillReturnRows(trainRows(1))

		train, err := repo.GetByID(1)
		require.NoError(t, err)
		assert.Equal(t, "016A", train.TrainNumber)
		assert.Equal(t, "Moscow", train.RouteFrom)
		assert.True(t, train.IsActive)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Inactive Or Missing Train", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM trains`).
			WithArgs(int64(99)).
			WillReturnRows(trainRows())

		train, err := repo.GetByID(99)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Nil(t, train)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSearchTrains(t *testing.T) {
	repo, mock := newTrainRepoWithMock(t)

	t.Run("Matching Route", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM trains`).
			WithArgs("Moscow", "Kazan").
			WillReturnRows(trainRows(1, 2))

		trains, err := repo.Search("Moscow", "Kazan")
		require.NoError(t, err)
		assert.Len(t, trains, 2)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Matches Returns Empty", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM trains`).
			WithArgs("Moscow", "Vladivostok").
			WillReturnRows(trainRows())

		trains, err := repo.Search("Moscow", "Vladivostok")
		require.NoError(t, err)
		assert.Empty(t, trains)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeactivateDeparted(t *testing.T) {
	repo, mock := newTrainRepoWithMock(t)

	now := time.Now()
	mock.ExpectExec(`UPDATE trains`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 2))

	count, err := repo.DeactivateDeparted(now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
