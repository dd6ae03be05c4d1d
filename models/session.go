package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"apextelemetry/domain/telemetry"
)

// RaceSession is a recorded telemetry session: one driver, one race date,
// and the lap series generated for them. RaceDate is the YYYY-MM-DD string
// the session was anchored to; empty when unanchored.
type RaceSession struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Name       string    `json:"name" db:"name"`
	DriverName string    `json:"driver_name" db:"driver_name"`
	RaceDate   string    `json:"race_date" db:"race_date"`
	Notes      string    `json:"notes" db:"notes"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// LapSeries is an ordered lap record sequence stored as a JSONB column.
type LapSeries []telemetry.LapRecord

// Value implements driver.Valuer.
func (s LapSeries) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal(LapSeries{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *LapSeries) Scan(value interface{}) error {
	if value == nil {
		*s = LapSeries{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into LapSeries", value)
	}

	if len(raw) == 0 {
		*s = LapSeries{}
		return nil
	}
	return json.Unmarshal(raw, s)
}

// Comparison is a saved two-driver comparison. Both lap series are stored
// denormalized so a saved comparison survives session deletion.
type Comparison struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Driver1Name string    `json:"driver1_name" db:"driver1_name"`
	Driver2Name string    `json:"driver2_name" db:"driver2_name"`
	RaceDate    string    `json:"race_date" db:"race_date"`
	Data1       LapSeries `json:"data1" db:"data1"`
	Data2       LapSeries `json:"data2" db:"data2"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
