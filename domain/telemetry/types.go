package telemetry

import "time"

// DateLayout is the calendar-date format accepted for race dates.
const DateLayout = "2006-01-02"

// DefaultTotalLaps is the standard race distance used when the caller does
// not specify a lap count.
const DefaultTotalLaps = 50

// GroundTruth carries externally sourced actual race results used to anchor
// synthetic output to reality. Both fields are independently optional; a nil
// pointer means the value was not resolved, which is distinct from zero.
type GroundTruth struct {
	// Position is the actual finishing position in [1, 20], if known.
	Position *int `json:"position,omitempty"`

	// FastestLapSeconds is the driver's actual fastest lap in seconds, if
	// known. Always > 0 when present.
	FastestLapSeconds *float64 `json:"fastest_lap_seconds,omitempty"`
}

// Options configures a single generation call.
type Options struct {
	// RaceDate anchors lap timestamps to the given calendar date (at
	// midnight UTC) when non-empty. Must match DateLayout; an unparseable
	// value is a hard validation error, never silently replaced by "now".
	RaceDate string

	// GroundTruth, when non-nil, anchors position and base lap time to
	// actual race results.
	GroundTruth *GroundTruth

	// TotalLaps is the number of records to produce. nil means
	// DefaultTotalLaps; an explicit value <= 0 is a validation error.
	TotalLaps *int
}

// Laps is a convenience constructor for Options.TotalLaps.
func Laps(n int) *int { return &n }

// LapRecord is one synthesized telemetry sample representing a single
// completed lap. JSON field names are part of the interchange contract and
// match the storage schema.
type LapRecord struct {
	Lap               int       `json:"lap" db:"lap"`
	SpeedKMH          float64   `json:"speed_kmh" db:"speed_kmh"`
	RPM               float64   `json:"rpm" db:"rpm"`
	LapTimeSeconds    float64   `json:"lap_time_seconds" db:"lap_time_seconds"`
	TireTempCelsius   float64   `json:"tire_temp_celsius" db:"tire_temp_celsius"`
	TireWearPercent   float64   `json:"tire_wear_percent" db:"tire_wear_percent"`
	SectorTimeSeconds float64   `json:"sector_time_seconds" db:"sector_time_seconds"`
	Position          int       `json:"position" db:"position"`
	Timestamp         time.Time `json:"timestamp" db:"timestamp"`
}
