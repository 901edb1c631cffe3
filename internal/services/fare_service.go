package services

import (
	"fmt"
	"math"

	"github.com/Andrew766938/DASHA-FINAL/internal/models"
)

// Fixed percent-off table, applied after the wagon multiplier.
var discountPercents = map[models.DiscountClass]float64{
	models.DiscountNone:      0,
	models.DiscountChild:     50,
	models.DiscountStudent:   25,
	models.DiscountPensioner: 40,
}

// FareService computes ticket fares. It is pure: no state, no storage, and
// the same inputs always produce the same output.
type FareService struct{}

// NewFareService creates a new FareService
func NewFareService() *FareService {
	return &FareService{}
}

// Calculate prices a fare: grossFare = baseFare * multiplier, then the
// discount percent comes off, rounded half-up to the currency minor unit.
// Non-positive inputs and unknown discount classes fail with
// ErrInvalidFareInput; callers wanting no discount must pass DiscountNone
// explicitly.
func (s *FareService) Calculate(baseFare, multiplier float64, class models.DiscountClass) (discountPercent, finalFare float64, err error) {
	if baseFare <= 0 {
		return 0, 0, fmt.Errorf("base fare %v must be positive: %w", baseFare, models.ErrInvalidFareInput)
	}
	if multiplier <= 0 {
		return 0, 0, fmt.Errorf("fare multiplier %v must be positive: %w", multiplier, models.ErrInvalidFareInput)
	}

	percent, ok := discountPercents[class]
	if !ok {
		return 0, 0, fmt.Errorf("discount class %q: %w", class, models.ErrInvalidFareInput)
	}

	grossFare := baseFare * multiplier
	finalFare = roundHalfUp(grossFare * (1 - percent/100))

	return percent, finalFare, nil
}

// DiscountTable returns the supported discount classes and their percent-off
// rates, in a stable order for API responses.
func (s *FareService) DiscountTable() []models.DiscountRate {
	classes := []models.DiscountClass{
		models.DiscountNone,
		models.DiscountChild,
		models.DiscountStudent,
		models.DiscountPensioner,
	}

	rates := make([]models.DiscountRate, 0, len(classes))
	for _, class := range classes {
		rates = append(rates, models.DiscountRate{
			Class:   class,
			Percent: discountPercents[class],
		})
	}
	return rates
}

// roundHalfUp rounds to two decimals, ties away from zero.
func roundHalfUp(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
