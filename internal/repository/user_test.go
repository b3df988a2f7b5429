package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cradoe/safetrain/internal/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

var userRowColumns = []string{"id", "name", "email", "password", "current_level", "training_completed", "status", "created_at"}

func TestUserEmailExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("amaka@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "amaka@example.com")
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	user := &models.User{Name: "Amaka", Email: "amaka@example.com", HashedPassword: "$2a$10$hash"}

	t.Run("returns id", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.Name, user.Email, user.HashedPassword).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

		id, err := repo.Insert(context.Background(), user)
		require.NoError(t, err)
		require.Equal(t, int64(11), id)
	})

	t.Run("maps unique violation", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.Name, user.Email, user.HashedPassword).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		_, err := repo.Insert(context.Background(), user)
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("passes other errors through", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.Name, user.Email, user.HashedPassword).
			WillReturnError(errors.New("connection refused"))

		_, err := repo.Insert(context.Background(), user)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrDuplicateEmail)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("amaka@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(3), "Amaka", "amaka@example.com", "$2a$10$hash", 2, false, UserAccountActiveStatus, fixedTime))

	user, found, err := repo.GetByEmail(context.Background(), "amaka@example.com")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int64(3), user.ID)
	require.Equal(t, 2, user.CurrentLevel)

	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	user, found, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, user)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetOne_PropagatesErrors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(int64(3)).
		WillReturnError(errors.New("connection reset"))

	user, found, err := repo.GetOne(context.Background(), 3)
	require.Error(t, err)
	require.False(t, found)
	require.Nil(t, user)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCompleteTraining(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users SET training_completed = TRUE").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.CompleteTraining(context.Background(), 3)
	require.NoError(t, err)
	require.True(t, updated)

	mock.ExpectExec("UPDATE users SET training_completed = TRUE").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err = repo.CompleteTraining(context.Background(), 404)
	require.NoError(t, err)
	require.False(t, updated)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdatePasswordByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users SET password").
		WithArgs("$2a$10$new", "nobody@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := repo.UpdatePasswordByEmail(context.Background(), "nobody@example.com", "$2a$10$new")
	require.NoError(t, err)
	require.False(t, updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserAdvanceLevel(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("SET current_level = GREATEST").
		WithArgs(int64(2), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AdvanceLevel(context.Background(), 3, 2)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
