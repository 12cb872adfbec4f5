package service

import (
	"context"

	"SajuPulse/internal/domain/models"
)

// PeriodCalculator derives the symbolic labels of a calendar month for a subject.
type PeriodCalculator interface {
	ComputePeriod(profile models.BirthProfile, year, month int) models.Period
}

// EventScorer scores one period for one event type. Natal and transit snapshots are optional.
type EventScorer interface {
	ScoreEvent(period models.Period, event models.EventType, natal *models.NatalSnapshot, transit *models.TransitSnapshot) models.ScoringResult
}

// CategoryAnalyzer explains per-category scores with symbolic factors.
type CategoryAnalyzer interface {
	AnalyzeCategories(scores map[models.Category]float64, factors []models.CausalFactor, sibsin models.Sibsin, stage models.Stage,
		term *models.SolarTerm, mansion *models.LunarMansion) map[models.Category]models.CategoryAnalysis
}

// FactorDetector finds stem/branch relations and special stars between a profile and a period.
type FactorDetector interface {
	Detect(profile models.BirthProfile, period models.Period) []models.CausalFactor
}

// AstrologyProvider supplies natal and transit snapshots for a period.
// Implementations return (nil, nil) when no data is available.
type AstrologyProvider interface {
	Natal(ctx context.Context, profile models.BirthProfile, year, month int) (*models.NatalSnapshot, error)
	Transit(ctx context.Context, profile models.BirthProfile, year, month int) (*models.TransitSnapshot, error)
}
