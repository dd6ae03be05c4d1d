package excel

import (
	"bytes"
	"time"

	"github.com/xuri/excelize/v2"

	"apextelemetry/domain/telemetry"
)

var lapHeaders = []string{
	"Lap", "Speed (km/h)", "RPM", "Lap Time (s)", "Tire Temp (°C)",
	"Tire Wear (%)", "Sector Time (s)", "Position", "Timestamp",
}

// WriteLapSeries renders a session's lap series as an xlsx workbook and
// returns the file bytes, ready to stream as a download.
func WriteLapSeries(sessionName string, laps []telemetry.LapRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Telemetry"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// Title row, then headers.
	if err := f.SetCellValue(sheet, "A1", sessionName); err != nil {
		return nil, err
	}
	for i, h := range lapHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for r, lap := range laps {
		rowIdx := r + 3
		values := []interface{}{
			lap.Lap, lap.SpeedKMH, lap.RPM, lap.LapTimeSeconds,
			lap.TireTempCelsius, lap.TireWearPercent, lap.SectorTimeSeconds,
			lap.Position, lap.Timestamp.Format(time.RFC3339),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
