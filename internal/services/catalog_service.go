package services

import (
	"fmt"

	"github.com/Andrew766938/DASHA-FINAL/internal/database"
	"github.com/Andrew766938/DASHA-FINAL/internal/models"
)

// CatalogService answers route searches and train/wagon lookups. It is
// read-only over the schedule; seat availability is always delegated to the
// seat repository, never cached.
type CatalogService struct {
	trainRepo *database.TrainRepository
	wagonRepo *database.WagonRepository
	seatRepo  *database.SeatRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	trainRepo *database.TrainRepository,
	wagonRepo *database.WagonRepository,
	seatRepo *database.SeatRepository,
) *CatalogService {
	return &CatalogService{
		trainRepo: trainRepo,
		wagonRepo: wagonRepo,
		seatRepo:  seatRepo,
	}
}

// SearchTrips returns active trains between two cities with their wagons and
// the total free-seat count per train.
func (s *CatalogService) SearchTrips(routeFrom, routeTo string) ([]models.TripSummary, error) {
	trains, err := s.trainRepo.Search(routeFrom, routeTo)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.TripSummary, 0, len(trains))
	for _, train := range trains {
		wagons, err := s.wagonRepo.GetByTrainID(train.ID)
		if err != nil {
			return nil, err
		}

		available := 0
		for _, wagon := range wagons {
			count, err := s.seatRepo.CountAvailable(wagon.ID)
			if err != nil {
				return nil, err
			}
			available += count
		}

		summaries = append(summaries, models.TripSummary{
			Train:              train,
			AvailableSeatCount: available,
			Wagons:             wagons,
		})
	}

	return summaries, nil
}

// ListTrains returns all active trains.
func (s *CatalogService) ListTrains() ([]models.Train, error) {
	return s.trainRepo.ListActive()
}

// GetTrain returns an active train by ID.
func (s *CatalogService) GetTrain(id int64) (*models.Train, error) {
	return s.trainRepo.GetByID(id)
}

// GetWagon returns a wagon by ID.
func (s *CatalogService) GetWagon(id int64) (*models.Wagon, error) {
	return s.wagonRepo.GetByID(id)
}

// WagonsOf returns all wagons of an active train.
func (s *CatalogService) WagonsOf(trainID int64) ([]models.Wagon, error) {
	if _, err := s.trainRepo.GetByID(trainID); err != nil {
		return nil, err
	}
	return s.wagonRepo.GetByTrainID(trainID)
}

// WagonsOfClass returns the wagons of an active train matching one class.
func (s *CatalogService) WagonsOfClass(trainID int64, class string) ([]models.Wagon, error) {
	parsed, err := models.ParseWagonClass(class)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrNotFound)
	}
	if _, err := s.trainRepo.GetByID(trainID); err != nil {
		return nil, err
	}
	return s.wagonRepo.GetByClass(trainID, parsed)
}

// WagonLayout returns a wagon and all of its seats in number order.
func (s *CatalogService) WagonLayout(wagonID int64) (*models.WagonLayout, error) {
	wagon, err := s.wagonRepo.GetByID(wagonID)
	if err != nil {
		return nil, err
	}
	seats, err := s.seatRepo.ListByWagon(wagonID)
	if err != nil {
		return nil, err
	}
	return &models.WagonLayout{Wagon: *wagon, Seats: seats}, nil
}

// AvailableSeats returns the free seats of a wagon in seat-number order.
func (s *CatalogService) AvailableSeats(wagonID int64) ([]models.Seat, error) {
	if _, err := s.wagonRepo.GetByID(wagonID); err != nil {
		return nil, err
	}
	return s.seatRepo.ListAvailable(wagonID)
}

// AvailableSeatCount returns the number of free seats in a wagon.
func (s *CatalogService) AvailableSeatCount(wagonID int64) (int, error) {
	return s.seatRepo.CountAvailable(wagonID)
}
