package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andrew766938/DASHA-FINAL/internal/config"
	"github.com/Andrew766938/DASHA-FINAL/internal/database"
	"github.com/Andrew766938/DASHA-FINAL/internal/services"
)

func setupBookingTest(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	fareService := services.NewFareService()
	bookingService := services.NewBookingService(
		database.NewTrainRepository(sqlxDB),
		database.NewWagonRepository(sqlxDB),
		database.NewSeatRepository(sqlxDB),
		database.NewTicketRepository(sqlxDB),
		fareService,
		config.BookingConfig{HoldExpiry: 15 * time.Minute, Currency: "RUB"},
		logger,
	)
	handler := NewBookingHandler(bookingService, fareService)

	router := gin.New()
	router.GET("/api/v1/discounts", handler.GetDiscounts)
	router.POST("/api/v1/fare/quote", handler.QuoteFare)
	router.POST("/api/v1/tickets", handler.BookSeat)
	router.POST("/api/v1/tickets/:ticketId/pay", handler.PayTicket)
	return router, mock
}

func TestGetDiscounts(t *testing.T) {
	router, _ := setupBookingTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/discounts", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Discounts []struct {
			Class   string  `json:"class"`
			Percent float64 `json:"percent"`
		} `json:"discounts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Discounts, 4)
}

func TestQuoteFareValidation(t *testing.T) {
	router, _ := setupBookingTest(t)

	t.Run("Missing Fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/fare/quote",
			bytes.NewBufferString(`{"train_id": 1}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/fare/quote",
			bytes.NewBufferString(`{`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookSeatConflictMapsTo409(t *testing.T) {
	router, mock := setupBookingTest(t)

	departure := time.Date(2026, 9, 14, 8, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM trains`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "train_number", "route_from", "route_to", "departure_time",
			"arrival_time", "duration_hours", "base_fare", "is_active", "created_at",
		}).AddRow(
			int64(1), "016A", "Moscow", "Kazan", departure,
			departure.Add(12*time.Hour), 12, 1000.0, true, time.Now(),
		))
	mock.ExpectQuery(`SELECT (.+) FROM wagons`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "train_id", "wagon_number", "wagon_class", "total_seats",
			"fare_multiplier", "created_at",
		}).AddRow(int64(2), int64(1), 1, "coupe", 36, 1.5, time.Now()))
	mock.ExpectQuery(`SELECT (.+) FROM seats`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "wagon_id", "seat_number", "status", "claim_token", "held_at", "created_at",
		}).AddRow(int64(3), int64(2), 12, "free", nil, nil, time.Now()))

	// The conditional claim loses the race.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE seats`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	payload := `{
		"train_id": 1, "wagon_id": 2, "seat_id": 3,
		"passenger_name": "Anna Petrova",
		"passenger_email": "anna@example.com",
		"passenger_phone": "+79001234567",
		"discount_class": "student"
	}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/tickets", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayTicketStatuses(t *testing.T) {
	router, mock := setupBookingTest(t)

	t.Run("Invalid ID Is 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/tickets/abc/pay", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Already Paid Is 409", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE tickets`).
			WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
		mock.ExpectQuery(`SELECT status FROM tickets`).
			WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("paid"))
		mock.ExpectRollback()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/tickets/10/pay", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Ticket Is 404", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE tickets`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
		mock.ExpectQuery(`SELECT status FROM tickets`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}))
		mock.ExpectRollback()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/tickets/99/pay", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
