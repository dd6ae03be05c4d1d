package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"apextelemetry/domain/telemetry"
	"apextelemetry/internal"
	apperrors "apextelemetry/internal/errors"
	"apextelemetry/models"
	"apextelemetry/ports"
)

// pitStopWearDrop is the tire-wear drop between consecutive laps that
// reads as a pit stop.
const pitStopWearDrop = 20.0

// SessionService manages race sessions and their telemetry.
type SessionService struct {
	sessions ports.SessionRepository
	results  ports.ResultsProvider
	mailer   ports.Mailer
	log      *internal.Logger

	totalLaps int
}

// NewSessionService creates a session service. totalLaps is the race
// distance used for generated sessions.
func NewSessionService(sessions ports.SessionRepository, results ports.ResultsProvider, mailer ports.Mailer, totalLaps int) *SessionService {
	if totalLaps <= 0 {
		totalLaps = telemetry.DefaultTotalLaps
	}
	return &SessionService{
		sessions:  sessions,
		results:   results,
		mailer:    mailer,
		log:       internal.DefaultLogger,
		totalLaps: totalLaps,
	}
}

// SessionView is a session together with its lap series and derived
// pit-stop laps.
type SessionView struct {
	Session  *models.RaceSession
	Laps     []telemetry.LapRecord
	PitStops []int
}

// CreateSession generates a telemetry session for the driver and persists
// it. Ground truth is resolved from the results feed on a best-effort
// basis; the owner is notified by email when configured.
func (s *SessionService) CreateSession(ctx context.Context, user *models.User, name, driverName, raceDate string) (*models.RaceSession, error) {
	if name == "" || driverName == "" {
		return nil, apperrors.ValidationError("session name and driver are required")
	}

	truth, err := s.results.GroundTruthFor(ctx, driverName, raceDate)
	if err != nil {
		s.log.Warn("ground truth lookup for %s failed: %v", driverName, err)
		truth = nil
	}

	laps, err := telemetry.Generate(driverName, telemetry.Options{
		RaceDate:    raceDate,
		GroundTruth: truth,
		TotalLaps:   telemetry.Laps(s.totalLaps),
	})
	if err != nil {
		return nil, err
	}

	session := &models.RaceSession{
		UserID:     user.ID,
		Name:       name,
		DriverName: driverName,
		RaceDate:   raceDate,
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	if err := s.sessions.ReplaceLaps(ctx, session.ID, laps); err != nil {
		return nil, err
	}

	s.notify(ctx, user, "New telemetry session created",
		fmt.Sprintf("Session %q for %s is ready with %d laps.", name, driverName, len(laps)))

	return session, nil
}

// GetSessionView loads a session with its laps, enforcing ownership.
func (s *SessionService) GetSessionView(ctx context.Context, userID, sessionID uuid.UUID) (*SessionView, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	laps, err := s.sessions.GetLaps(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &SessionView{
		Session:  session,
		Laps:     laps,
		PitStops: DetectPitStops(laps),
	}, nil
}

// ListSessions returns the user's sessions, most recent first.
func (s *SessionService) ListSessions(ctx context.Context, userID uuid.UUID) ([]*models.RaceSession, error) {
	return s.sessions.ListUserSessions(ctx, userID)
}

// CountSessions returns the number of sessions the user owns.
func (s *SessionService) CountSessions(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.sessions.CountUserSessions(ctx, userID)
}

// RenameSession updates the display name, enforcing ownership.
func (s *SessionService) RenameSession(ctx context.Context, userID, sessionID uuid.UUID, name string) error {
	if name == "" {
		return apperrors.ValidationError("session name is required")
	}
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.sessions.RenameSession(ctx, sessionID, name)
}

// UpdateNotes replaces the session's Markdown notes, enforcing ownership.
func (s *SessionService) UpdateNotes(ctx context.Context, userID, sessionID uuid.UUID, notes string) error {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.sessions.UpdateNotes(ctx, sessionID, notes)
}

// DeleteSession removes the session and its laps, enforcing ownership.
func (s *SessionService) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.sessions.DeleteSession(ctx, sessionID)
}

// RefreshSession regenerates the session's telemetry from current ground
// truth. Detected pit stops are reported to the owner by email.
func (s *SessionService) RefreshSession(ctx context.Context, user *models.User, sessionID uuid.UUID) (*SessionView, error) {
	session, err := s.ownedSession(ctx, user.ID, sessionID)
	if err != nil {
		return nil, err
	}

	truth, err := s.results.GroundTruthFor(ctx, session.DriverName, session.RaceDate)
	if err != nil {
		s.log.Warn("ground truth lookup for %s failed: %v", session.DriverName, err)
		truth = nil
	}

	laps, err := telemetry.Generate(session.DriverName, telemetry.Options{
		RaceDate:    session.RaceDate,
		GroundTruth: truth,
		TotalLaps:   telemetry.Laps(s.totalLaps),
	})
	if err != nil {
		return nil, err
	}

	if err := s.sessions.ReplaceLaps(ctx, sessionID, laps); err != nil {
		return nil, err
	}

	pitStops := DetectPitStops(laps)
	if len(pitStops) > 0 {
		s.notify(ctx, user, "Pit stops detected",
			fmt.Sprintf("Session %q: pit stops on laps %v.", session.Name, pitStops))
	}

	return &SessionView{Session: session, Laps: laps, PitStops: pitStops}, nil
}

// ownedSession loads the session and verifies the caller owns it.
func (s *SessionService) ownedSession(ctx context.Context, userID, sessionID uuid.UUID) (*models.RaceSession, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, apperrors.Forbidden("session belongs to another user")
	}
	return session, nil
}

func (s *SessionService) notify(ctx context.Context, user *models.User, subject, body string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		s.log.Warn("notification to %s failed: %v", user.Email, err)
	}
}

// DetectPitStops returns the lap numbers where tire wear drops sharply
// against the previous lap, which reads as a fresh set of tires.
func DetectPitStops(laps []telemetry.LapRecord) []int {
	var stops []int
	for i := 1; i < len(laps); i++ {
		if laps[i-1].TireWearPercent-laps[i].TireWearPercent > pitStopWearDrop {
			stops = append(stops, laps[i].Lap)
		}
	}
	return stops
}
