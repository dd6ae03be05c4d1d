package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apextelemetry/domain/telemetry"
)

func lapSeries(times []float64, speeds []float64, finalPos int) []telemetry.LapRecord {
	laps := make([]telemetry.LapRecord, len(times))
	for i := range times {
		laps[i] = telemetry.LapRecord{
			Lap:               i + 1,
			LapTimeSeconds:    times[i],
			SpeedKMH:          speeds[i],
			SectorTimeSeconds: times[i] / 3,
			TireWearPercent:   float64(i) * 2,
			Position:          finalPos,
		}
	}
	return laps
}

func TestSummarize(t *testing.T) {
	laps := lapSeries(
		[]float64{90, 92, 88, 90},
		[]float64{300, 310, 305, 315},
		4,
	)

	s := Summarize("Test Driver", laps)

	assert.Equal(t, "Test Driver", s.DriverName)
	assert.Equal(t, 4, s.Laps)
	assert.InDelta(t, 90.0, s.MeanLapTime, 1e-9)
	assert.InDelta(t, 90.0, s.MedianLapTime, 1e-9)
	assert.InDelta(t, 88.0, s.BestLapTime, 1e-9)
	assert.InDelta(t, 307.5, s.MeanSpeed, 1e-9)
	assert.InDelta(t, 315.0, s.TopSpeed, 1e-9)
	assert.InDelta(t, 360.0, s.TotalRaceTime, 1e-9)
	assert.Equal(t, 4, s.FinalPosition)
	assert.InDelta(t, 6.0, s.FinalTireWear, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize("Test Driver", nil)
	assert.Equal(t, 0, s.Laps)
	assert.Zero(t, s.MeanLapTime)
	assert.Zero(t, s.BestLapTime)
}

func TestComparePerfectCorrelation(t *testing.T) {
	// Second series is the first shifted by a constant, correlation 1.
	laps1 := lapSeries([]float64{90, 92, 88, 91}, []float64{300, 300, 300, 300}, 1)
	laps2 := lapSeries([]float64{91, 93, 89, 92}, []float64{295, 295, 295, 295}, 2)

	c := Compare("Driver One", laps1, "Driver Two", laps2)

	require.Equal(t, 4, c.Driver1.Laps)
	require.Equal(t, 4, c.Driver2.Laps)
	assert.InDelta(t, 1.0, c.LapTimeCorrelation, 1e-9)
	assert.InDelta(t, -1.0, c.MeanLapTimeDelta, 1e-9)
}

func TestCompareMismatchedLengths(t *testing.T) {
	laps1 := lapSeries([]float64{90, 92}, []float64{300, 300}, 1)
	laps2 := lapSeries([]float64{91}, []float64{295}, 2)

	c := Compare("Driver One", laps1, "Driver Two", laps2)
	assert.Zero(t, c.LapTimeCorrelation)
}
