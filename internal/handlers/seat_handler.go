package handlers

import (
	"net/http"

	"github.com/Andrew766938/DASHA-FINAL/internal/services"
	"github.com/gin-gonic/gin"
)

// SeatHandler handles wagon layout and seat availability API endpoints
type SeatHandler struct {
	catalog *services.CatalogService
}

// NewSeatHandler creates a new SeatHandler
func NewSeatHandler(catalog *services.CatalogService) *SeatHandler {
	return &SeatHandler{catalog: catalog}
}

// GetWagon returns a single wagon
// GET /api/v1/wagons/:wagonId
func (h *SeatHandler) GetWagon(c *gin.Context) {
	wagonID, ok := parseIDParam(c, "wagonId")
	if !ok {
		return
	}

	wagon, err := h.catalog.GetWagon(wagonID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, wagon)
}

// GetWagonLayout returns a wagon with every seat and its current status
// GET /api/v1/wagons/:wagonId/seats
func (h *SeatHandler) GetWagonLayout(c *gin.Context) {
	wagonID, ok := parseIDParam(c, "wagonId")
	if !ok {
		return
	}

	layout, err := h.catalog.WagonLayout(wagonID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, layout)
}

// GetAvailableSeats returns the free seats of a wagon
// GET /api/v1/wagons/:wagonId/available
func (h *SeatHandler) GetAvailableSeats(c *gin.Context) {
	wagonID, ok := parseIDParam(c, "wagonId")
	if !ok {
		return
	}

	seats, err := h.catalog.AvailableSeats(wagonID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"seats": seats,
		"count": len(seats),
	})
}
