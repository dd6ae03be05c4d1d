package stats

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"apextelemetry/domain/telemetry"
)

// DriverSummary aggregates one driver's lap series for display next to
// the other driver's.
type DriverSummary struct {
	DriverName     string  `json:"driver_name"`
	Laps           int     `json:"laps"`
	MeanLapTime    float64 `json:"mean_lap_time"`
	MedianLapTime  float64 `json:"median_lap_time"`
	StdDevLapTime  float64 `json:"stddev_lap_time"`
	BestLapTime    float64 `json:"best_lap_time"`
	MeanSpeed      float64 `json:"mean_speed"`
	TopSpeed       float64 `json:"top_speed"`
	FinalPosition  int     `json:"final_position"`
	TotalRaceTime  float64 `json:"total_race_time"`
	FinalTireWear  float64 `json:"final_tire_wear"`
	MeanSectorTime float64 `json:"mean_sector_time"`
}

// ComparisonSummary is the head-to-head readout for two drivers over the
// same race distance.
type ComparisonSummary struct {
	Driver1 DriverSummary `json:"driver1"`
	Driver2 DriverSummary `json:"driver2"`

	// LapTimeCorrelation is the Pearson correlation of the two lap-time
	// series, zero when the series lengths differ.
	LapTimeCorrelation float64 `json:"lap_time_correlation"`

	// MeanLapTimeDelta is driver1 mean minus driver2 mean; negative means
	// driver1 is faster on average.
	MeanLapTimeDelta float64 `json:"mean_lap_time_delta"`
}

// Summarize reduces a lap series to its headline numbers.
func Summarize(driverName string, laps []telemetry.LapRecord) DriverSummary {
	summary := DriverSummary{DriverName: driverName, Laps: len(laps)}
	if len(laps) == 0 {
		return summary
	}

	lapTimes := make([]float64, len(laps))
	speeds := make([]float64, len(laps))
	sectors := make([]float64, len(laps))
	total := 0.0
	for i, lap := range laps {
		lapTimes[i] = lap.LapTimeSeconds
		speeds[i] = lap.SpeedKMH
		sectors[i] = lap.SectorTimeSeconds
		total += lap.LapTimeSeconds
	}

	summary.MeanLapTime, _ = stats.Mean(lapTimes)
	summary.MedianLapTime, _ = stats.Median(lapTimes)
	summary.StdDevLapTime, _ = stats.StandardDeviation(lapTimes)
	summary.BestLapTime, _ = stats.Min(lapTimes)
	summary.MeanSpeed, _ = stats.Mean(speeds)
	summary.TopSpeed, _ = stats.Max(speeds)
	summary.MeanSectorTime, _ = stats.Mean(sectors)
	summary.TotalRaceTime = total

	last := laps[len(laps)-1]
	summary.FinalPosition = last.Position
	summary.FinalTireWear = last.TireWearPercent

	return summary
}

// Compare builds the head-to-head summary for two lap series.
func Compare(driver1 string, laps1 []telemetry.LapRecord, driver2 string, laps2 []telemetry.LapRecord) ComparisonSummary {
	summary := ComparisonSummary{
		Driver1: Summarize(driver1, laps1),
		Driver2: Summarize(driver2, laps2),
	}
	summary.MeanLapTimeDelta = summary.Driver1.MeanLapTime - summary.Driver2.MeanLapTime

	if len(laps1) == len(laps2) && len(laps1) > 1 {
		times1 := make([]float64, len(laps1))
		times2 := make([]float64, len(laps2))
		for i := range laps1 {
			times1[i] = laps1[i].LapTimeSeconds
			times2[i] = laps2[i].LapTimeSeconds
		}
		summary.LapTimeCorrelation = stat.Correlation(times1, times2, nil)
	}

	return summary
}
