package services

import (
	"errors"
	"time"

	"github.com/Andrew766938/DASHA-FINAL/internal/config"
	"github.com/Andrew766938/DASHA-FINAL/internal/database"
	"github.com/Andrew766938/DASHA-FINAL/internal/models"
	"github.com/sirupsen/logrus"
)

// HoldSweeperService releases seats whose pending ticket was never paid
// within the configured hold-expiry window. The core only exposes the release
// primitive; this service is the policy loop driving it.
type HoldSweeperService struct {
	ticketRepo *database.TicketRepository
	seatRepo   *database.SeatRepository
	config     config.BookingConfig
	logger     *logrus.Logger
	stopCh     chan struct{}
}

// NewHoldSweeperService creates a new HoldSweeperService
func NewHoldSweeperService(
	ticketRepo *database.TicketRepository,
	seatRepo *database.SeatRepository,
	cfg config.BookingConfig,
	logger *logrus.Logger,
) *HoldSweeperService {
	return &HoldSweeperService{
		ticketRepo: ticketRepo,
		seatRepo:   seatRepo,
		config:     cfg,
		logger:     logger,
		stopCh:     make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (s *HoldSweeperService) Start() {
	s.logger.WithFields(logrus.Fields{
		"hold_expiry":    s.config.HoldExpiry,
		"sweep_interval": s.config.SweepInterval,
	}).Info("Starting hold sweeper")
	go s.run()
}

// Stop stops the background sweep loop.
func (s *HoldSweeperService) Stop() {
	s.logger.Info("Stopping hold sweeper")
	close(s.stopCh)
}

func (s *HoldSweeperService) run() {
	// Run immediately on start
	s.sweep()

	ticker := time.NewTicker(s.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			s.logger.Info("Hold sweeper stopped")
			return
		}
	}
}

// RunOnce runs a single sweep cycle (manual trigger and tests).
func (s *HoldSweeperService) RunOnce() {
	s.sweep()
}

func (s *HoldSweeperService) sweep() {
	cutoff := time.Now().Add(-s.config.HoldExpiry)

	stale, err := s.ticketRepo.GetExpiredPending(cutoff, 100)
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch stale pending tickets")
		return
	}

	for _, ticket := range stale {
		if _, err := s.ticketRepo.Release(ticket.ID); err != nil {
			// A concurrent payment or cancellation may have won; that is fine.
			if errors.Is(err, models.ErrAlreadyPaid) || errors.Is(err, models.ErrInvalidState) {
				continue
			}
			s.logger.WithError(err).WithField("ticket_id", ticket.ID).Error("Failed to release stale hold")
			continue
		}
		s.logger.WithFields(logrus.Fields{
			"ticket_id":     ticket.ID,
			"ticket_number": ticket.TicketNumber,
			"seat_id":       ticket.SeatID,
		}).Info("Stale hold released")
	}

	orphans, err := s.seatRepo.ReleaseOrphanHolds()
	if err != nil {
		s.logger.WithError(err).Error("Failed to release orphan seat holds")
	} else if orphans > 0 {
		s.logger.WithField("count", orphans).Warn("Released orphan seat holds")
	}
}
