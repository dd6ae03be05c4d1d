package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apextelemetry/domain/telemetry"
	"apextelemetry/ports"
)

// stubResults is a canned ResultsProvider for handler tests.
type stubResults struct {
	drivers []ports.Driver
	races   []ports.Race
	years   []int
	truth   *telemetry.GroundTruth
}

func (s *stubResults) Drivers(ctx context.Context) ([]ports.Driver, error) {
	return s.drivers, nil
}

func (s *stubResults) AvailableYears(ctx context.Context) ([]int, error) {
	return s.years, nil
}

func (s *stubResults) RacesForDriver(ctx context.Context, driverName string) ([]ports.Race, error) {
	return s.races, nil
}

func (s *stubResults) GroundTruthFor(ctx context.Context, driverName, raceDate string) (*telemetry.GroundTruth, error) {
	return s.truth, nil
}

func testRouter() http.Handler {
	return NewServer(&stubResults{
		drivers: []ports.Driver{{ID: "hamilton", Name: "Lewis Hamilton", Code: "HAM"}},
		races:   []ports.Race{{Year: 2021, Round: 10, Name: "British Grand Prix", Date: "2021-07-18"}},
		years:   []int{2021, 2020},
	}).Router()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestHealthz(t *testing.T) {
	rec, body := doJSON(t, testRouter(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestDriversEndpoint(t *testing.T) {
	rec, body := doJSON(t, testRouter(), http.MethodGet, "/api/drivers", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	drivers := body["drivers"].([]interface{})
	require.Len(t, drivers, 1)
	assert.Equal(t, "Lewis Hamilton", drivers[0].(map[string]interface{})["name"])
}

func TestDriverRacesEndpoint(t *testing.T) {
	rec, body := doJSON(t, testRouter(), http.MethodGet, "/api/driver-races/Lewis%20Hamilton", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Lewis Hamilton", body["driver"])

	races := body["races"].([]interface{})
	require.Len(t, races, 1)
	assert.Equal(t, "British Grand Prix", races[0].(map[string]interface{})["name"])
}

func TestYearsEndpoint(t *testing.T) {
	rec, body := doJSON(t, testRouter(), http.MethodGet, "/api/years", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["years"].([]interface{}), 2)
}

func TestTelemetryEndpoint(t *testing.T) {
	rec, body := doJSON(t, testRouter(), http.MethodPost, "/api/telemetry", map[string]interface{}{
		"driver_name": "Lewis Hamilton",
		"race_date":   "2021-07-18",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	laps := body["laps"].([]interface{})
	require.Len(t, laps, 50)

	first := laps[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["lap"])
	for _, field := range []string{
		"speed_kmh", "rpm", "lap_time_seconds", "tire_temp_celsius",
		"tire_wear_percent", "sector_time_seconds", "position", "timestamp",
	} {
		assert.Contains(t, first, field)
	}
}

func TestTelemetryEndpointCustomLapCount(t *testing.T) {
	rec, body := doJSON(t, testRouter(), http.MethodPost, "/api/telemetry", map[string]interface{}{
		"driver_name": "Lewis Hamilton",
		"total_laps":  5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["laps"].([]interface{}), 5)
}

func TestTelemetryEndpointValidation(t *testing.T) {
	router := testRouter()

	rec, body := doJSON(t, router, http.MethodPost, "/api/telemetry", map[string]interface{}{
		"driver_name": "Lewis Hamilton",
		"race_date":   "18/07/2021",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_DATE_FORMAT", body["code"])

	rec, body = doJSON(t, router, http.MethodPost, "/api/telemetry", map[string]interface{}{
		"driver_name": "Lewis Hamilton",
		"total_laps":  0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_LAP_COUNT", body["code"])

	rec, body = doJSON(t, router, http.MethodPost, "/api/telemetry", map[string]interface{}{
		"race_date": "2021-07-18",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}
