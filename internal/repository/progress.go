package repository

import (
	"context"

	"github.com/cradoe/safetrain/internal/models"
	"github.com/jmoiron/sqlx"
)

type ProgressRepository interface {
	GetByUser(ctx context.Context, userID int64) ([]models.UserProgress, error)
	Upsert(ctx context.Context, progress *models.UserProgress) (bool, error)
}

type ProgressRepositoryImpl struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) ProgressRepository {
	return &ProgressRepositoryImpl{db: db}
}

func (repo *ProgressRepositoryImpl) GetByUser(ctx context.Context, userID int64) ([]models.UserProgress, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	progress := []models.UserProgress{}

	query := `
		SELECT user_id, course_id, is_completed
		FROM user_progress
		WHERE user_id = $1
		ORDER BY course_id ASC`

	err := repo.db.SelectContext(ctx, &progress, query, userID)
	if err != nil {
		return nil, err
	}

	return progress, nil
}

// Upsert writes the progress row for (user, course) and reports whether a new row was inserted.
// Repeating a submission updates the same row; the primary key keeps one row per pair.
func (repo *ProgressRepositoryImpl) Upsert(ctx context.Context, progress *models.UserProgress) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var inserted bool

	query := `
		INSERT INTO user_progress (user_id, course_id, is_completed)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, course_id) DO UPDATE SET
			is_completed = EXCLUDED.is_completed,
			updated_at = NOW()
		RETURNING (xmax = 0) AS inserted`

	err := repo.db.GetContext(ctx, &inserted, query, progress.UserID, progress.CourseID, progress.IsCompleted)
	if err != nil {
		return false, err
	}

	return inserted, nil
}
