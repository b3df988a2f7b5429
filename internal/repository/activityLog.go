// Every account action is written to the activity log for auditing.
// Entity and entity_id are polymorphic so one table serves users, kyc records and courses.
package repository

import (
	"context"

	"github.com/cradoe/safetrain/internal/models"
	"github.com/jmoiron/sqlx"
)

type ActivityRepository interface {
	Insert(ctx context.Context, log *models.ActivityLog) (*models.ActivityLog, error)
}

const (
	// ActivityLogUserEntity is used in activities that has to do with the user account and the users table
	ActivityLogUserEntity = "user"

	// ActivityLogKycEntity is used in activities that has to do with KYC submissions
	ActivityLogKycEntity = "kyc"

	// ActivityLogCourseEntity is used in activities that has to do with course progress
	ActivityLogCourseEntity = "course"
)

type ActivityRepositoryImpl struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &ActivityRepositoryImpl{db: db}
}

func (repo *ActivityRepositoryImpl) Insert(ctx context.Context, log *models.ActivityLog) (*models.ActivityLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var created models.ActivityLog

	query := `
		INSERT INTO activity_logs (user_id, entity, entity_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, entity, entity_id, description, created_at`

	err := repo.db.GetContext(ctx, &created, query,
		log.UserID,
		log.Entity,
		log.EntityId,
		log.Description,
	)
	if err != nil {
		return nil, err
	}

	return &created, nil
}
