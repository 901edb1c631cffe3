package handlers

import (
	"net/http"

	"github.com/Andrew766938/DASHA-FINAL/internal/models"
	"github.com/Andrew766938/DASHA-FINAL/internal/services"
	"github.com/gin-gonic/gin"
)

// TrainHandler handles train catalog API endpoints
type TrainHandler struct {
	catalog *services.CatalogService
}

// NewTrainHandler creates a new TrainHandler
func NewTrainHandler(catalog *services.CatalogService) *TrainHandler {
	return &TrainHandler{catalog: catalog}
}

// SearchTrains returns active trains matching a route, with per-wagon
// availability rolled up
// GET /api/v1/trains/search?from=Moscow&to=Kazan
func (h *TrainHandler) SearchTrains(c *gin.Context) {
	var req models.SearchTrainsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trips, err := h.catalog.SearchTrips(req.From, req.To)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trips": trips,
		"count": len(trips),
	})
}

// ListTrains returns all active trains
// GET /api/v1/trains
func (h *TrainHandler) ListTrains(c *gin.Context) {
	trains, err := h.catalog.ListTrains()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, trains)
}

// GetTrain returns a single train
// GET /api/v1/trains/:trainId
func (h *TrainHandler) GetTrain(c *gin.Context) {
	trainID, ok := parseIDParam(c, "trainId")
	if !ok {
		return
	}

	train, err := h.catalog.GetTrain(trainID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, train)
}

// GetTrainWagons returns all wagons of a train
// GET /api/v1/trains/:trainId/wagons
func (h *TrainHandler) GetTrainWagons(c *gin.Context) {
	trainID, ok := parseIDParam(c, "trainId")
	if !ok {
		return
	}

	wagons, err := h.catalog.WagonsOf(trainID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, wagons)
}

// GetTrainWagonsByClass returns a train's wagons of one class
// GET /api/v1/trains/:trainId/wagons/type/:class
func (h *TrainHandler) GetTrainWagonsByClass(c *gin.Context) {
	trainID, ok := parseIDParam(c, "trainId")
	if !ok {
		return
	}

	wagons, err := h.catalog.WagonsOfClass(trainID, c.Param("class"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, wagons)
}
