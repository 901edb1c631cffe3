package handlers

import (
	"net/http"

	"github.com/Andrew766938/DASHA-FINAL/internal/models"
	"github.com/Andrew766938/DASHA-FINAL/internal/services"
	"github.com/gin-gonic/gin"
)

// BookingHandler handles fare quoting and ticket lifecycle API endpoints
type BookingHandler struct {
	booking *services.BookingService
	fare    *services.FareService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(booking *services.BookingService, fare *services.FareService) *BookingHandler {
	return &BookingHandler{
		booking: booking,
		fare:    fare,
	}
}

// GetDiscounts returns the discount classes and their rates
// GET /api/v1/discounts
func (h *BookingHandler) GetDiscounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"discounts": h.fare.DiscountTable()})
}

// QuoteFare prices a train/wagon/discount combination without reserving
// POST /api/v1/fare/quote
func (h *BookingHandler) QuoteFare(c *gin.Context) {
	var req models.QuoteFareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.booking.QuoteFare(req.TrainID, req.WagonID, req.DiscountClass)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// BookSeat claims a seat and creates a pending ticket
// POST /api/v1/tickets
func (h *BookingHandler) BookSeat(c *gin.Context) {
	var req models.BookSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.booking.BookSeat(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// GetTicket returns a ticket with its train, wagon and seat details
// GET /api/v1/tickets/:ticketId
func (h *BookingHandler) GetTicket(c *gin.Context) {
	ticketID, ok := parseIDParam(c, "ticketId")
	if !ok {
		return
	}

	itinerary, err := h.booking.GetItinerary(ticketID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, itinerary)
}

// PayTicket confirms payment and finalizes the seat
// POST /api/v1/tickets/:ticketId/pay
func (h *BookingHandler) PayTicket(c *gin.Context) {
	ticketID, ok := parseIDParam(c, "ticketId")
	if !ok {
		return
	}

	ticket, err := h.booking.PayTicket(ticketID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// CancelTicket releases a pending ticket and frees its seat
// POST /api/v1/tickets/:ticketId/cancel
func (h *BookingHandler) CancelTicket(c *gin.Context) {
	ticketID, ok := parseIDParam(c, "ticketId")
	if !ok {
		return
	}

	ticket, err := h.booking.CancelTicket(ticketID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// GetPassengerTickets returns a passenger's tickets, newest first
// GET /api/v1/tickets/passenger/:email
func (h *BookingHandler) GetPassengerTickets(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passenger email is required"})
		return
	}

	tickets, err := h.booking.TicketsForPassenger(email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tickets": tickets,
		"count":   len(tickets),
	})
}
