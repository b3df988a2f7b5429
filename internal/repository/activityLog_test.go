package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cradoe/safetrain/internal/models"
	"github.com/stretchr/testify/require"
)

func TestActivityInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivityRepository(db)

	entry := &models.ActivityLog{
		UserID:      3,
		Entity:      ActivityLogKycEntity,
		EntityId:    "3",
		Description: "KYC submitted",
	}

	mock.ExpectQuery("INSERT INTO activity_logs").
		WithArgs(entry.UserID, entry.Entity, entry.EntityId, entry.Description).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "entity", "entity_id", "description", "created_at"}).
			AddRow(int64(1), int64(3), ActivityLogKycEntity, "3", "KYC submitted", fixedTime))

	created, err := repo.Insert(context.Background(), entry)
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
