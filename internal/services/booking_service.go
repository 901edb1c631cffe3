package services

import (
	"fmt"

	"github.com/Andrew766938/DASHA-FINAL/internal/config"
	"github.com/Andrew766938/DASHA-FINAL/internal/database"
	"github.com/Andrew766938/DASHA-FINAL/internal/models"
	"github.com/sirupsen/logrus"
)

// BookingService drives the ticket lifecycle: it resolves the
// train/wagon/seat chain, prices the fare, claims the seat and creates the
// ticket in one transaction, and later flips it to paid or released.
type BookingService struct {
	trainRepo  *database.TrainRepository
	wagonRepo  *database.WagonRepository
	seatRepo   *database.SeatRepository
	ticketRepo *database.TicketRepository
	fare       *FareService
	config     config.BookingConfig
	logger     *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	trainRepo *database.TrainRepository,
	wagonRepo *database.WagonRepository,
	seatRepo *database.SeatRepository,
	ticketRepo *database.TicketRepository,
	fare *FareService,
	cfg config.BookingConfig,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		trainRepo:  trainRepo,
		wagonRepo:  wagonRepo,
		seatRepo:   seatRepo,
		ticketRepo: ticketRepo,
		fare:       fare,
		config:     cfg,
		logger:     logger,
	}
}

// QuoteFare prices a train/wagon/discount combination without reserving
// anything.
func (s *BookingService) QuoteFare(trainID, wagonID int64, discountClass string) (*models.FareQuote, error) {
	train, err := s.trainRepo.GetByID(trainID)
	if err != nil {
		return nil, err
	}

	wagon, err := s.wagonRepo.GetByID(wagonID)
	if err != nil {
		return nil, err
	}
	if wagon.TrainID != train.ID {
		return nil, fmt.Errorf("wagon %d does not belong to train %d: %w", wagonID, trainID, models.ErrRouteMismatch)
	}

	class, err := models.ParseDiscountClass(discountClass)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidFareInput)
	}

	percent, finalFare, err := s.fare.Calculate(train.BaseFare, wagon.FareMultiplier, class)
	if err != nil {
		return nil, err
	}

	return &models.FareQuote{
		BaseFare:        train.BaseFare,
		FareMultiplier:  wagon.FareMultiplier,
		DiscountClass:   class,
		DiscountPercent: percent,
		FinalFare:       finalFare,
		Currency:        s.config.Currency,
	}, nil
}

// BookSeat reserves a specific seat and creates its pending ticket. The seat
// claim and the ticket insert commit or roll back together, so on any failure
// the seat state is unchanged and no ticket exists.
func (s *BookingService) BookSeat(req *models.BookSeatRequest) (*models.Ticket, error) {
	train, err := s.trainRepo.GetByID(req.TrainID)
	if err != nil {
		return nil, err
	}

	wagon, err := s.wagonRepo.GetByID(req.WagonID)
	if err != nil {
		return nil, err
	}
	if wagon.TrainID != train.ID {
		return nil, fmt.Errorf("wagon %d does not belong to train %d: %w", req.WagonID, req.TrainID, models.ErrRouteMismatch)
	}

	seat, err := s.seatRepo.GetByID(req.SeatID)
	if err != nil {
		return nil, err
	}
	if seat.WagonID != wagon.ID {
		return nil, fmt.Errorf("seat %d does not belong to wagon %d: %w", req.SeatID, req.WagonID, models.ErrRouteMismatch)
	}

	class, err := models.ParseDiscountClass(req.DiscountClass)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidFareInput)
	}

	percent, finalFare, err := s.fare.Calculate(train.BaseFare, wagon.FareMultiplier, class)
	if err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		TrainID:         train.ID,
		WagonID:         wagon.ID,
		SeatID:          seat.ID,
		PassengerName:   req.PassengerName,
		PassengerEmail:  req.PassengerEmail,
		PassengerPhone:  req.PassengerPhone,
		DiscountClass:   class,
		DiscountPercent: percent,
		BaseFare:        train.BaseFare,
		FinalFare:       finalFare,
		// Schedule snapshot: later edits to the train never alter the ticket.
		DepartureTime: train.DepartureTime,
		ArrivalTime:   train.ArrivalTime,
	}

	if err := s.ticketRepo.CreateWithReservation(ticket, train.TrainNumber, wagon.WagonNumber, seat.SeatNumber); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"ticket_id":     ticket.ID,
		"ticket_number": ticket.TicketNumber,
		"train_id":      train.ID,
		"wagon_id":      wagon.ID,
		"seat_id":       seat.ID,
		"final_fare":    ticket.FinalFare,
	}).Info("Seat booked")

	return ticket, nil
}

// PayTicket flips a pending ticket to paid and marks the seat sold, as one
// atomic unit. Paying an already-paid ticket fails with ErrAlreadyPaid and
// changes nothing.
func (s *BookingService) PayTicket(id int64) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.MarkPaid(id)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"ticket_id":     ticket.ID,
		"ticket_number": ticket.TicketNumber,
		"final_fare":    ticket.FinalFare,
	}).Info("Ticket paid")

	return ticket, nil
}

// CancelTicket releases a pending ticket and frees its seat.
func (s *BookingService) CancelTicket(id int64) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.Release(id)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"ticket_id":     ticket.ID,
		"ticket_number": ticket.TicketNumber,
		"seat_id":       ticket.SeatID,
	}).Info("Ticket released")

	return ticket, nil
}

// GetTicket returns a ticket by ID.
func (s *BookingService) GetTicket(id int64) (*models.Ticket, error) {
	return s.ticketRepo.GetByID(id)
}

// GetItinerary returns the ticket joined with its train, wagon and seat.
func (s *BookingService) GetItinerary(id int64) (*models.TicketItinerary, error) {
	return s.ticketRepo.GetItinerary(id)
}

// TicketsForPassenger returns all tickets booked under an email address.
func (s *BookingService) TicketsForPassenger(email string) ([]models.Ticket, error) {
	return s.ticketRepo.GetByPassengerEmail(email)
}
