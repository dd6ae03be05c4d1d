package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"apextelemetry/domain/telemetry"
	apperrors "apextelemetry/internal/errors"
	"apextelemetry/models"
	"apextelemetry/ports"
)

// SessionRepositoryImpl implements SessionRepository for PostgreSQL.
type SessionRepositoryImpl struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new PostgreSQL session repository.
func NewSessionRepository(db *sqlx.DB) ports.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// CreateSession inserts a new race session.
func (r *SessionRepositoryImpl) CreateSession(ctx context.Context, session *models.RaceSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.CreatedAt = time.Now()

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO race_sessions (id, user_id, name, driver_name, race_date, notes, created_at)
		VALUES (:id, :user_id, :name, :driver_name, :race_date, :notes, :created_at)
	`, session)
	return err
}

// GetSession retrieves a session by ID.
func (r *SessionRepositoryImpl) GetSession(ctx context.Context, sessionID uuid.UUID) (*models.RaceSession, error) {
	var session models.RaceSession
	err := r.db.GetContext(ctx, &session, `
		SELECT id, user_id, name, driver_name, race_date, notes, created_at
		FROM race_sessions
		WHERE id = $1
	`, sessionID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("session")
		}
		return nil, err
	}

	return &session, nil
}

// ListUserSessions returns a user's sessions, most recent first.
func (r *SessionRepositoryImpl) ListUserSessions(ctx context.Context, userID uuid.UUID) ([]*models.RaceSession, error) {
	var sessions []*models.RaceSession
	err := r.db.SelectContext(ctx, &sessions, `
		SELECT id, user_id, name, driver_name, race_date, notes, created_at
		FROM race_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	return sessions, err
}

// RenameSession updates the session display name.
func (r *SessionRepositoryImpl) RenameSession(ctx context.Context, sessionID uuid.UUID, name string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE race_sessions SET name = $2 WHERE id = $1
	`, sessionID, name)
	return err
}

// UpdateNotes updates the session's Markdown notes.
func (r *SessionRepositoryImpl) UpdateNotes(ctx context.Context, sessionID uuid.UUID, notes string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE race_sessions SET notes = $2 WHERE id = $1
	`, sessionID, notes)
	return err
}

// DeleteSession removes the session; its lap records cascade.
func (r *SessionRepositoryImpl) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM race_sessions WHERE id = $1`, sessionID)
	return err
}

// CountUserSessions returns the number of sessions a user owns.
func (r *SessionRepositoryImpl) CountUserSessions(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM race_sessions WHERE user_id = $1
	`, userID)
	return count, err
}

// ReplaceLaps atomically replaces the session's stored lap series.
func (r *SessionRepositoryImpl) ReplaceLaps(ctx context.Context, sessionID uuid.UUID, laps []telemetry.LapRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lap_records WHERE session_id = $1`, sessionID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO lap_records (
			session_id, lap, speed_kmh, rpm, lap_time_seconds, tire_temp_celsius,
			tire_wear_percent, sector_time_seconds, position, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, lap := range laps {
		_, err := stmt.ExecContext(ctx,
			sessionID, lap.Lap, lap.SpeedKMH, lap.RPM, lap.LapTimeSeconds,
			lap.TireTempCelsius, lap.TireWearPercent, lap.SectorTimeSeconds,
			lap.Position, lap.Timestamp,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetLaps returns the session's lap series ordered by lap number.
func (r *SessionRepositoryImpl) GetLaps(ctx context.Context, sessionID uuid.UUID) ([]telemetry.LapRecord, error) {
	var laps []telemetry.LapRecord
	err := r.db.SelectContext(ctx, &laps, `
		SELECT lap, speed_kmh, rpm, lap_time_seconds, tire_temp_celsius,
		       tire_wear_percent, sector_time_seconds, position, timestamp
		FROM lap_records
		WHERE session_id = $1
		ORDER BY lap
	`, sessionID)
	return laps, err
}
