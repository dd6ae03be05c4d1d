package telemetry

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Validation errors raised before any generation work begins. No partial
// sequences are ever returned.
var (
	ErrInvalidDateFormat = errors.New("race date is not a valid YYYY-MM-DD date")
	ErrInvalidLapCount   = errors.New("total laps must be a positive integer")
)

// Generate produces the full ordered lap series for a driver. The output is
// byte-for-byte reproducible for identical inputs: all randomness comes from
// a call-scoped stream seeded from the driver seed, so concurrent calls for
// different drivers (or repeated calls for the same driver) never interfere.
func Generate(driverName string, opts Options) ([]LapRecord, error) {
	totalLaps := DefaultTotalLaps
	if opts.TotalLaps != nil {
		totalLaps = *opts.TotalLaps
	}
	if totalLaps <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLapCount, totalLaps)
	}

	baseTime := time.Now().UTC()
	if opts.RaceDate != "" {
		parsed, err := time.Parse(DateLayout, opts.RaceDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDateFormat, opts.RaceDate)
		}
		baseTime = parsed
	}

	mods := DeriveModifiers(driverName)

	// The stream is seeded once per call and never shared. Draw order below
	// is fixed; changing it changes every sequence ever generated.
	rng := rand.New(rand.NewSource(int64(mods.DriverSeed)))
	uniform := func(lo, hi float64) float64 {
		return lo + rng.Float64()*(hi-lo)
	}

	var actualPosition *int
	var fastestLap *float64
	if opts.GroundTruth != nil {
		actualPosition = opts.GroundTruth.Position
		fastestLap = opts.GroundTruth.FastestLapSeconds
	}

	// Base lap time is fixed before the loop: anchored 2s above the actual
	// fastest lap when known, otherwise derived from the driver's modifier.
	baseLapTime := 85 - mods.LapTime
	if fastestLap != nil {
		baseLapTime = *fastestLap + 2.0
	}

	startPosition := clampInt(1, 20, 5+floorDiv(mods.Performance, 2))

	consistency := float64(mods.Consistency)
	wearRate := 1.8 + consistency*0.1

	records := make([]LapRecord, 0, totalLaps)

	for lap := 1; lap <= totalLaps; lap++ {
		baseSpeed := 280 + mods.Speed + uniform(-20, 20)
		baseRPM := 12000 + uniform(-500, 500)

		wear := clamp(0, 100, float64(lap)/float64(totalLaps)*100*wearRate+uniform(-5, 5))
		temp := 90 + wear*0.3 + uniform(-5, 5)

		lapTime := baseLapTime + wear*0.1 + uniform(-2, 2)/consistency
		sectorTime := lapTime/3 + uniform(-0.5, 0.5)/consistency

		var position int
		if actualPosition != nil {
			position = clampInt(1, 20, *actualPosition+int(math.Round(uniform(-1, 1))))
		} else {
			drift := int(math.Round(uniform(-3, 3) - float64(mods.Performance)/3))
			position = clampInt(1, 20, startPosition+drift+lap/15)
		}

		speed := baseSpeed - wear*0.5 + uniform(-10, 10)
		rpm := baseRPM + (speed-280)*10 + uniform(-200, 200)

		records = append(records, LapRecord{
			Lap:               lap,
			SpeedKMH:          roundTo(speed, 2),
			RPM:               roundTo(rpm, 0),
			LapTimeSeconds:    roundTo(lapTime, 3),
			TireTempCelsius:   roundTo(temp, 1),
			TireWearPercent:   roundTo(wear, 1),
			SectorTimeSeconds: roundTo(sectorTime, 3),
			Position:          position,
			Timestamp:         baseTime.Add(time.Duration(float64(lap) * lapTime * float64(time.Second))),
		})
	}

	return records, nil
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(lo, hi, v int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// floorDiv divides rounding toward negative infinity, so a -9 performance
// modifier yields -5 rather than -4.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
