package app

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	appstats "apextelemetry/adapters/stats"
	"apextelemetry/domain/telemetry"
	"apextelemetry/internal"
	apperrors "apextelemetry/internal/errors"
	"apextelemetry/models"
	"apextelemetry/ports"
)

// ComparisonService generates and stores head-to-head driver comparisons.
type ComparisonService struct {
	comparisons ports.ComparisonRepository
	results     ports.ResultsProvider
	log         *internal.Logger

	totalLaps int
}

// NewComparisonService creates a comparison service. totalLaps is the race
// distance both drivers are generated over.
func NewComparisonService(comparisons ports.ComparisonRepository, results ports.ResultsProvider, totalLaps int) *ComparisonService {
	if totalLaps <= 0 {
		totalLaps = telemetry.DefaultTotalLaps
	}
	return &ComparisonService{
		comparisons: comparisons,
		results:     results,
		log:         internal.DefaultLogger,
		totalLaps:   totalLaps,
	}
}

// ComparisonResult is a generated comparison ready for display or saving.
type ComparisonResult struct {
	Driver1Name string
	Driver2Name string
	RaceDate    string
	Laps1       []telemetry.LapRecord
	Laps2       []telemetry.LapRecord
	Summary     appstats.ComparisonSummary
}

// Compare generates both drivers' telemetry for the same race date
// concurrently and summarizes them head to head.
func (s *ComparisonService) Compare(ctx context.Context, driver1, driver2, raceDate string) (*ComparisonResult, error) {
	if driver1 == "" || driver2 == "" {
		return nil, apperrors.ValidationError("both drivers are required")
	}
	if driver1 == driver2 {
		return nil, apperrors.ValidationError("pick two different drivers")
	}

	var laps1, laps2 []telemetry.LapRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		laps1, err = s.generate(gctx, driver1, raceDate)
		return err
	})
	g.Go(func() error {
		var err error
		laps2, err = s.generate(gctx, driver2, raceDate)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ComparisonResult{
		Driver1Name: driver1,
		Driver2Name: driver2,
		RaceDate:    raceDate,
		Laps1:       laps1,
		Laps2:       laps2,
		Summary:     appstats.Compare(driver1, laps1, driver2, laps2),
	}, nil
}

func (s *ComparisonService) generate(ctx context.Context, driverName, raceDate string) ([]telemetry.LapRecord, error) {
	truth, err := s.results.GroundTruthFor(ctx, driverName, raceDate)
	if err != nil {
		s.log.Warn("ground truth lookup for %s failed: %v", driverName, err)
		truth = nil
	}

	return telemetry.Generate(driverName, telemetry.Options{
		RaceDate:    raceDate,
		GroundTruth: truth,
		TotalLaps:   telemetry.Laps(s.totalLaps),
	})
}

// SaveComparison persists a generated comparison for the user.
func (s *ComparisonService) SaveComparison(ctx context.Context, userID uuid.UUID, result *ComparisonResult) (*models.Comparison, error) {
	comparison := &models.Comparison{
		UserID:      userID,
		Driver1Name: result.Driver1Name,
		Driver2Name: result.Driver2Name,
		RaceDate:    result.RaceDate,
		Data1:       result.Laps1,
		Data2:       result.Laps2,
	}
	if err := s.comparisons.CreateComparison(ctx, comparison); err != nil {
		return nil, err
	}
	return comparison, nil
}

// GetComparison loads a saved comparison with its summary, enforcing
// ownership.
func (s *ComparisonService) GetComparison(ctx context.Context, userID, comparisonID uuid.UUID) (*models.Comparison, appstats.ComparisonSummary, error) {
	comparison, err := s.comparisons.GetComparison(ctx, comparisonID)
	if err != nil {
		return nil, appstats.ComparisonSummary{}, err
	}
	if comparison.UserID != userID {
		return nil, appstats.ComparisonSummary{}, apperrors.Forbidden("comparison belongs to another user")
	}

	summary := appstats.Compare(comparison.Driver1Name, comparison.Data1, comparison.Driver2Name, comparison.Data2)
	return comparison, summary, nil
}

// ListComparisons returns the user's saved comparisons, most recent first.
func (s *ComparisonService) ListComparisons(ctx context.Context, userID uuid.UUID) ([]*models.Comparison, error) {
	return s.comparisons.ListUserComparisons(ctx, userID)
}

// CountComparisons returns the number of comparisons the user owns.
func (s *ComparisonService) CountComparisons(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.comparisons.CountUserComparisons(ctx, userID)
}

// DeleteComparison removes a saved comparison, enforcing ownership.
func (s *ComparisonService) DeleteComparison(ctx context.Context, userID, comparisonID uuid.UUID) error {
	comparison, err := s.comparisons.GetComparison(ctx, comparisonID)
	if err != nil {
		return err
	}
	if comparison.UserID != userID {
		return apperrors.Forbidden("comparison belongs to another user")
	}
	return s.comparisons.DeleteComparison(ctx, comparisonID)
}
