package services

import (
	"fmt"
	"time"

	"github.com/Andrew766938/DASHA-FINAL/internal/database"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// MaintenanceService runs scheduled catalog upkeep jobs.
type MaintenanceService struct {
	cron      *cron.Cron
	trainRepo *database.TrainRepository
	logger    *logrus.Logger
}

// NewMaintenanceService creates a new MaintenanceService
func NewMaintenanceService(trainRepo *database.TrainRepository, logger *logrus.Logger) *MaintenanceService {
	return &MaintenanceService{
		cron:      cron.New(cron.WithSeconds()),
		trainRepo: trainRepo,
		logger:    logger,
	}
}

// Start schedules all maintenance jobs.
func (s *MaintenanceService) Start() error {
	// Deactivate departed trains daily at 2 AM so searches stay truthful.
	// Cron format: second minute hour day month weekday
	_, err := s.cron.AddFunc("0 0 2 * * *", s.deactivateDepartedJob)
	if err != nil {
		return fmt.Errorf("failed to schedule departed-train job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Maintenance jobs scheduled")
	return nil
}

// Stop stops the cron scheduler.
func (s *MaintenanceService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Maintenance jobs stopped")
}

// RunDeactivateDepartedNow triggers the departed-train job immediately.
func (s *MaintenanceService) RunDeactivateDepartedNow() {
	s.deactivateDepartedJob()
}

func (s *MaintenanceService) deactivateDepartedJob() {
	count, err := s.trainRepo.DeactivateDeparted(time.Now())
	if err != nil {
		s.logger.WithError(err).Error("Failed to deactivate departed trains")
		return
	}
	if count > 0 {
		s.logger.WithField("count", count).Info("Deactivated departed trains")
	}
}
