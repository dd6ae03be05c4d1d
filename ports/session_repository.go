package ports

import (
	"context"

	"github.com/google/uuid"

	"apextelemetry/domain/telemetry"
	"apextelemetry/models"
)

// SessionRepository defines the interface for race-session persistence.
type SessionRepository interface {
	// CreateSession inserts a new race session.
	CreateSession(ctx context.Context, session *models.RaceSession) error

	// GetSession retrieves a session by ID.
	GetSession(ctx context.Context, sessionID uuid.UUID) (*models.RaceSession, error)

	// ListUserSessions returns a user's sessions, most recent first.
	ListUserSessions(ctx context.Context, userID uuid.UUID) ([]*models.RaceSession, error)

	// RenameSession updates the session display name.
	RenameSession(ctx context.Context, sessionID uuid.UUID, name string) error

	// UpdateNotes updates the session's Markdown notes.
	UpdateNotes(ctx context.Context, sessionID uuid.UUID, notes string) error

	// DeleteSession removes the session and its lap records.
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error

	// CountUserSessions returns the number of sessions a user owns.
	CountUserSessions(ctx context.Context, userID uuid.UUID) (int, error)

	// ReplaceLaps atomically replaces the session's stored lap series.
	ReplaceLaps(ctx context.Context, sessionID uuid.UUID, laps []telemetry.LapRecord) error

	// GetLaps returns the session's lap series ordered by lap number.
	GetLaps(ctx context.Context, sessionID uuid.UUID) ([]telemetry.LapRecord, error)
}

// ComparisonRepository defines the interface for saved comparisons.
type ComparisonRepository interface {
	// CreateComparison inserts a saved comparison.
	CreateComparison(ctx context.Context, comparison *models.Comparison) error

	// GetComparison retrieves a comparison by ID, including both series.
	GetComparison(ctx context.Context, comparisonID uuid.UUID) (*models.Comparison, error)

	// ListUserComparisons returns a user's comparisons, most recent first,
	// without the lap series payloads.
	ListUserComparisons(ctx context.Context, userID uuid.UUID) ([]*models.Comparison, error)

	// DeleteComparison removes a saved comparison.
	DeleteComparison(ctx context.Context, comparisonID uuid.UUID) error

	// CountUserComparisons returns the number of comparisons a user owns.
	CountUserComparisons(ctx context.Context, userID uuid.UUID) (int, error)
}
