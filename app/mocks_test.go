package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"apextelemetry/domain/telemetry"
	"apextelemetry/models"
	"apextelemetry/ports"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) CreateToken(ctx context.Context, userID uuid.UUID) (*models.AuthToken, error) {
	args := m.Called(ctx, userID)
	if t := args.Get(0); t != nil {
		return t.(*models.AuthToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTokenRepo) GetToken(ctx context.Context, token uuid.UUID) (*models.AuthToken, error) {
	args := m.Called(ctx, token)
	if t := args.Get(0); t != nil {
		return t.(*models.AuthToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTokenRepo) DeleteToken(ctx context.Context, token uuid.UUID) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenRepo) DeleteUserTokens(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) CreateSession(ctx context.Context, session *models.RaceSession) error {
	args := m.Called(ctx, session)
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockSessionRepo) GetSession(ctx context.Context, sessionID uuid.UUID) (*models.RaceSession, error) {
	args := m.Called(ctx, sessionID)
	if s := args.Get(0); s != nil {
		return s.(*models.RaceSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionRepo) ListUserSessions(ctx context.Context, userID uuid.UUID) ([]*models.RaceSession, error) {
	args := m.Called(ctx, userID)
	if s := args.Get(0); s != nil {
		return s.([]*models.RaceSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionRepo) RenameSession(ctx context.Context, sessionID uuid.UUID, name string) error {
	return m.Called(ctx, sessionID, name).Error(0)
}

func (m *mockSessionRepo) UpdateNotes(ctx context.Context, sessionID uuid.UUID, notes string) error {
	return m.Called(ctx, sessionID, notes).Error(0)
}

func (m *mockSessionRepo) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *mockSessionRepo) CountUserSessions(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockSessionRepo) ReplaceLaps(ctx context.Context, sessionID uuid.UUID, laps []telemetry.LapRecord) error {
	return m.Called(ctx, sessionID, laps).Error(0)
}

func (m *mockSessionRepo) GetLaps(ctx context.Context, sessionID uuid.UUID) ([]telemetry.LapRecord, error) {
	args := m.Called(ctx, sessionID)
	if l := args.Get(0); l != nil {
		return l.([]telemetry.LapRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockComparisonRepo struct{ mock.Mock }

func (m *mockComparisonRepo) CreateComparison(ctx context.Context, comparison *models.Comparison) error {
	args := m.Called(ctx, comparison)
	if comparison.ID == uuid.Nil {
		comparison.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockComparisonRepo) GetComparison(ctx context.Context, comparisonID uuid.UUID) (*models.Comparison, error) {
	args := m.Called(ctx, comparisonID)
	if c := args.Get(0); c != nil {
		return c.(*models.Comparison), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockComparisonRepo) ListUserComparisons(ctx context.Context, userID uuid.UUID) ([]*models.Comparison, error) {
	args := m.Called(ctx, userID)
	if c := args.Get(0); c != nil {
		return c.([]*models.Comparison), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockComparisonRepo) DeleteComparison(ctx context.Context, comparisonID uuid.UUID) error {
	return m.Called(ctx, comparisonID).Error(0)
}

func (m *mockComparisonRepo) CountUserComparisons(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type mockResults struct{ mock.Mock }

func (m *mockResults) Drivers(ctx context.Context) ([]ports.Driver, error) {
	args := m.Called(ctx)
	if d := args.Get(0); d != nil {
		return d.([]ports.Driver), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResults) AvailableYears(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	if y := args.Get(0); y != nil {
		return y.([]int), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResults) RacesForDriver(ctx context.Context, driverName string) ([]ports.Race, error) {
	args := m.Called(ctx, driverName)
	if r := args.Get(0); r != nil {
		return r.([]ports.Race), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResults) GroundTruthFor(ctx context.Context, driverName, raceDate string) (*telemetry.GroundTruth, error) {
	args := m.Called(ctx, driverName, raceDate)
	if t := args.Get(0); t != nil {
		return t.(*telemetry.GroundTruth), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}
