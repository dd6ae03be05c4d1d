package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"apextelemetry/domain/telemetry"
	"apextelemetry/internal"
	apperrors "apextelemetry/internal/errors"
	"apextelemetry/ports"
)

// Server is the headless JSON API surface. It exposes the driver catalog
// and on-demand telemetry generation without auth or persistence.
type Server struct {
	results ports.ResultsProvider
	log     *internal.Logger
}

// NewServer creates the JSON API server.
func NewServer(results ports.ResultsProvider) *Server {
	return &Server{results: results, log: internal.DefaultLogger}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/drivers", s.handleDrivers)
		r.Get("/driver-races/{driver}", s.handleDriverRaces)
		r.Get("/years", s.handleYears)
		r.Post("/telemetry", s.handleTelemetry)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := s.results.Drivers(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"drivers": drivers})
}

func (s *Server) handleDriverRaces(w http.ResponseWriter, r *http.Request) {
	driver := chi.URLParam(r, "driver")
	if unescaped, err := url.PathUnescape(driver); err == nil {
		driver = unescaped
	}
	if driver == "" {
		s.writeError(w, apperrors.ValidationError("driver is required"))
		return
	}

	races, err := s.results.RacesForDriver(r.Context(), driver)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"driver": driver, "races": races})
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	years, err := s.results.AvailableYears(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"years": years})
}

type telemetryRequest struct {
	DriverName string `json:"driver_name"`
	RaceDate   string `json:"race_date"`
	TotalLaps  *int   `json:"total_laps"`
}

func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	var req telemetryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.InvalidInput("request body is not valid JSON"))
		return
	}
	if req.DriverName == "" {
		s.writeError(w, apperrors.ValidationError("driver_name is required"))
		return
	}

	truth, err := s.results.GroundTruthFor(r.Context(), req.DriverName, req.RaceDate)
	if err != nil {
		s.log.Warn("ground truth lookup for %s failed: %v", req.DriverName, err)
		truth = nil
	}

	laps, err := telemetry.Generate(req.DriverName, telemetry.Options{
		RaceDate:    req.RaceDate,
		GroundTruth: truth,
		TotalLaps:   req.TotalLaps,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"driver_name": req.DriverName,
		"race_date":   req.RaceDate,
		"laps":        laps,
	})
}

// writeError maps application errors to HTTP responses with a stable
// error code in the body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)

	switch {
	case errors.Is(err, telemetry.ErrInvalidDateFormat):
		status = http.StatusBadRequest
		code = apperrors.CodeInvalidDateFormat
	case errors.Is(err, telemetry.ErrInvalidLapCount):
		status = http.StatusBadRequest
		code = apperrors.CodeInvalidLapCount
	default:
		switch code {
		case apperrors.CodeValidationError, apperrors.CodeInvalidInput:
			status = http.StatusBadRequest
		case apperrors.CodeNotFound:
			status = http.StatusNotFound
		case apperrors.CodeUnauthorized:
			status = http.StatusUnauthorized
		case apperrors.CodeForbidden:
			status = http.StatusForbidden
		case apperrors.CodeConflict:
			status = http.StatusConflict
		}
	}

	if status == http.StatusInternalServerError {
		s.log.Error("api error: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error(), "code": code})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
