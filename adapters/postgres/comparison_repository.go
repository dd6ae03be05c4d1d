package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperrors "apextelemetry/internal/errors"
	"apextelemetry/models"
	"apextelemetry/ports"
)

// ComparisonRepositoryImpl implements ComparisonRepository for PostgreSQL.
type ComparisonRepositoryImpl struct {
	db *sqlx.DB
}

// NewComparisonRepository creates a new PostgreSQL comparison repository.
func NewComparisonRepository(db *sqlx.DB) ports.ComparisonRepository {
	return &ComparisonRepositoryImpl{db: db}
}

// CreateComparison inserts a saved comparison.
func (r *ComparisonRepositoryImpl) CreateComparison(ctx context.Context, comparison *models.Comparison) error {
	if comparison.ID == uuid.Nil {
		comparison.ID = uuid.New()
	}
	comparison.CreatedAt = time.Now()

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO comparisons (id, user_id, driver1_name, driver2_name, race_date, data1, data2, created_at)
		VALUES (:id, :user_id, :driver1_name, :driver2_name, :race_date, :data1, :data2, :created_at)
	`, comparison)
	return err
}

// GetComparison retrieves a comparison by ID, including both lap series.
func (r *ComparisonRepositoryImpl) GetComparison(ctx context.Context, comparisonID uuid.UUID) (*models.Comparison, error) {
	var comparison models.Comparison
	err := r.db.GetContext(ctx, &comparison, `
		SELECT id, user_id, driver1_name, driver2_name, race_date, data1, data2, created_at
		FROM comparisons
		WHERE id = $1
	`, comparisonID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("comparison")
		}
		return nil, err
	}

	return &comparison, nil
}

// ListUserComparisons returns a user's comparisons, most recent first. The
// lap series payloads are left empty; load a single comparison for those.
func (r *ComparisonRepositoryImpl) ListUserComparisons(ctx context.Context, userID uuid.UUID) ([]*models.Comparison, error) {
	var comparisons []*models.Comparison
	err := r.db.SelectContext(ctx, &comparisons, `
		SELECT id, user_id, driver1_name, driver2_name, race_date,
		       '[]'::jsonb AS data1, '[]'::jsonb AS data2, created_at
		FROM comparisons
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	return comparisons, err
}

// DeleteComparison removes a saved comparison.
func (r *ComparisonRepositoryImpl) DeleteComparison(ctx context.Context, comparisonID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comparisons WHERE id = $1`, comparisonID)
	return err
}

// CountUserComparisons returns the number of comparisons a user owns.
func (r *ComparisonRepositoryImpl) CountUserComparisons(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM comparisons WHERE user_id = $1
	`, userID)
	return count, err
}
