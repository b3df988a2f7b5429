package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cradoe/safetrain/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, user *models.User) (int64, error)
	GetOne(ctx context.Context, id int64) (*models.User, bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, bool, error)
	UpdatePasswordByEmail(ctx context.Context, email, hashedPassword string) (bool, error)
	CompleteTraining(ctx context.Context, id int64) (bool, error)
	AdvanceLevel(ctx context.Context, id, courseID int64) error
}

const (
	// UserAccountActiveStatus is the default status after registration.
	UserAccountActiveStatus = "active"

	// UserAccountPendingStatus indicates that KYC documents were submitted and are awaiting review.
	UserAccountPendingStatus = "pending"
)

const userColumns = `id, name, email, password, current_level, training_completed, status, created_at`

// uniqueViolation is the postgres error code raised when a unique constraint fails
const uniqueViolation = "23505"

type UserRepositoryImpl struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (repo *UserRepositoryImpl) EmailExists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	err := repo.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// Insert stores a new user and returns its id.
// Two signups racing past EmailExists are settled by the unique index on email.
func (repo *UserRepositoryImpl) Insert(ctx context.Context, user *models.User) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var id int64
	query := `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := repo.db.GetContext(ctx, &id, query, user.Name, user.Email, user.HashedPassword)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}

	return id, nil
}

func (repo *UserRepositoryImpl) GetOne(ctx context.Context, id int64) (*models.User, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	err := repo.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &user, true, nil
}

func (repo *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	err := repo.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &user, true, nil
}

func (repo *UserRepositoryImpl) UpdatePasswordByEmail(ctx context.Context, email, hashedPassword string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `UPDATE users SET password = $1 WHERE email = $2`

	result, err := repo.db.ExecContext(ctx, query, hashedPassword, email)
	if err != nil {
		return false, err
	}

	return rowsAffected(result)
}

func (repo *UserRepositoryImpl) CompleteTraining(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `UPDATE users SET training_completed = TRUE WHERE id = $1`

	result, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	return rowsAffected(result)
}

// AdvanceLevel moves the user to the level after the given course.
// A user never drops to a lower level by passing an earlier course again.
func (repo *UserRepositoryImpl) AdvanceLevel(ctx context.Context, id, courseID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		UPDATE users
		SET current_level = GREATEST(current_level, (SELECT level + 1 FROM courses WHERE id = $1))
		WHERE id = $2`

	_, err := repo.db.ExecContext(ctx, query, courseID, id)
	return err
}

func rowsAffected(result sql.Result) (bool, error) {
	count, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
