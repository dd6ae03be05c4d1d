package app

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"apextelemetry/domain/telemetry"
	apperrors "apextelemetry/internal/errors"
	"apextelemetry/models"
)

func TestCreateSessionGeneratesAndPersists(t *testing.T) {
	sessions := new(mockSessionRepo)
	results := new(mockResults)
	mailer := new(mockMailer)
	svc := NewSessionService(sessions, results, mailer, 50)

	user := &models.User{ID: uuid.New(), Email: "driver1@example.com"}

	results.On("GroundTruthFor", mock.Anything, "Lewis Hamilton", "2021-07-18").
		Return((*telemetry.GroundTruth)(nil), nil)
	sessions.On("CreateSession", mock.Anything, mock.AnythingOfType("*models.RaceSession")).Return(nil)
	sessions.On("ReplaceLaps", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.MatchedBy(func(laps []telemetry.LapRecord) bool {
		return len(laps) == 50
	})).Return(nil)
	mailer.On("Send", mock.Anything, "driver1@example.com", mock.Anything, mock.Anything).Return(nil)

	session, err := svc.CreateSession(context.Background(), user, "Silverstone run", "Lewis Hamilton", "2021-07-18")
	require.NoError(t, err)
	assert.Equal(t, "Lewis Hamilton", session.DriverName)
	assert.Equal(t, user.ID, session.UserID)

	sessions.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestCreateSessionRejectsBadDate(t *testing.T) {
	sessions := new(mockSessionRepo)
	results := new(mockResults)
	svc := NewSessionService(sessions, results, nil, 50)

	user := &models.User{ID: uuid.New()}
	results.On("GroundTruthFor", mock.Anything, "Lewis Hamilton", "18/07/2021").
		Return((*telemetry.GroundTruth)(nil), nil)

	_, err := svc.CreateSession(context.Background(), user, "Bad date", "Lewis Hamilton", "18/07/2021")
	require.Error(t, err)
	assert.ErrorIs(t, err, telemetry.ErrInvalidDateFormat)
	sessions.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestSessionOwnershipEnforced(t *testing.T) {
	sessions := new(mockSessionRepo)
	svc := NewSessionService(sessions, new(mockResults), nil, 50)

	owner := uuid.New()
	intruder := uuid.New()
	sessionID := uuid.New()
	sessions.On("GetSession", mock.Anything, sessionID).Return(&models.RaceSession{
		ID:     sessionID,
		UserID: owner,
	}, nil)

	err := svc.RenameSession(context.Background(), intruder, sessionID, "mine now")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeForbidden, apperrors.GetCode(err))
	sessions.AssertNotCalled(t, "RenameSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshSessionNotifiesOnPitStops(t *testing.T) {
	sessions := new(mockSessionRepo)
	results := new(mockResults)
	mailer := new(mockMailer)
	svc := NewSessionService(sessions, results, mailer, 50)

	user := &models.User{ID: uuid.New(), Email: "driver1@example.com"}
	sessionID := uuid.New()
	sessions.On("GetSession", mock.Anything, sessionID).Return(&models.RaceSession{
		ID:         sessionID,
		UserID:     user.ID,
		Name:       "Silverstone run",
		DriverName: "Lewis Hamilton",
		RaceDate:   "2021-07-18",
	}, nil)
	results.On("GroundTruthFor", mock.Anything, "Lewis Hamilton", "2021-07-18").
		Return((*telemetry.GroundTruth)(nil), nil)
	sessions.On("ReplaceLaps", mock.Anything, sessionID, mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, "driver1@example.com", "Pit stops detected", mock.Anything).
		Return(nil).Maybe()

	view, err := svc.RefreshSession(context.Background(), user, sessionID)
	require.NoError(t, err)
	assert.Len(t, view.Laps, 50)

	// Notification fires exactly when pit stops were detected.
	if len(view.PitStops) > 0 {
		mailer.AssertCalled(t, "Send", mock.Anything, "driver1@example.com", "Pit stops detected", mock.Anything)
	} else {
		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestDetectPitStops(t *testing.T) {
	laps := []telemetry.LapRecord{
		{Lap: 1, TireWearPercent: 2},
		{Lap: 2, TireWearPercent: 30},
		{Lap: 3, TireWearPercent: 4},  // drop of 26: pit stop
		{Lap: 4, TireWearPercent: 20},
		{Lap: 5, TireWearPercent: 5},  // drop of 15: not a pit stop
	}

	assert.Equal(t, []int{3}, DetectPitStops(laps))
	assert.Empty(t, DetectPitStops(nil))
	assert.Empty(t, DetectPitStops(laps[:1]))
}
