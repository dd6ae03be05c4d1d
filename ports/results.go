package ports

import (
	"context"

	"apextelemetry/domain/telemetry"
)

// Driver is one entry in the historical driver catalog.
type Driver struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Nationality string `json:"nationality"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// Race is one round of a season's calendar.
type Race struct {
	Year        int    `json:"year"`
	Round       int    `json:"round"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Circuit     string `json:"circuit"`
	Location    string `json:"location"`
	Country     string `json:"country"`
	DisplayName string `json:"display_name"`
}

// ResultsProvider resolves historical race data from the upstream results
// feed. Implementations cache aggressively and fall back to built-in data
// when the feed is unreachable; they must be safe for concurrent use.
type ResultsProvider interface {
	// Drivers returns the driver catalog, sorted by name.
	Drivers(ctx context.Context) ([]Driver, error)

	// AvailableYears returns seasons with race data, most recent first.
	AvailableYears(ctx context.Context) ([]int, error)

	// RacesForDriver returns the races a driver took part in, most recent
	// first. Offline, every driver shares the same fallback calendar so
	// two-driver comparisons still line up.
	RacesForDriver(ctx context.Context, driverName string) ([]Race, error)

	// GroundTruthFor resolves the actual result for the race nearest the
	// given date. A nil result (with nil error) means no result could be
	// resolved; absent fields stay nil rather than defaulting to zero.
	GroundTruthFor(ctx context.Context, driverName, raceDate string) (*telemetry.GroundTruth, error)
}

// Mailer sends notification email. Implementations that are not configured
// log the message and report success, matching the application's optional
// email behavior.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
