package repository

import (
	"context"

	"github.com/cradoe/safetrain/internal/models"
	"github.com/jmoiron/sqlx"
)

type CourseRepository interface {
	GetAll(ctx context.Context) ([]models.Course, error)
	GetQuestions(ctx context.Context, courseID int64) ([]models.Question, error)
}

type CourseRepositoryImpl struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) CourseRepository {
	return &CourseRepositoryImpl{db: db}
}

// GetAll returns every course, lowest level first.
func (repo *CourseRepositoryImpl) GetAll(ctx context.Context) ([]models.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	courses := []models.Course{}

	query := `SELECT id, title, video_id, level FROM courses ORDER BY level ASC, id ASC`

	err := repo.db.SelectContext(ctx, &courses, query)
	if err != nil {
		return nil, err
	}

	return courses, nil
}

func (repo *CourseRepositoryImpl) GetQuestions(ctx context.Context, courseID int64) ([]models.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	questions := []models.Question{}

	query := `
		SELECT
			id,
			course_id,
			question_text,
			option_a,
			option_b,
			option_c,
			correct_option
		FROM
			questions
		WHERE
			course_id = $1
		ORDER BY
			id ASC`

	err := repo.db.SelectContext(ctx, &questions, query, courseID)
	if err != nil {
		return nil, err
	}

	return questions, nil
}
