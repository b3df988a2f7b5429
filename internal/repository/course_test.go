package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestCourseGetAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCourseRepository(db)

	t.Run("empty table", func(t *testing.T) {
		mock.ExpectQuery("FROM courses ORDER BY level").
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "video_id", "level"}))

		courses, err := repo.GetAll(context.Background())
		require.NoError(t, err)
		require.NotNil(t, courses)
		require.Empty(t, courses)
	})

	t.Run("rows", func(t *testing.T) {
		mock.ExpectQuery("FROM courses ORDER BY level").
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "video_id", "level"}).
				AddRow(int64(1), "Fire Safety", "vid-fire", 1).
				AddRow(int64(2), "Manual Handling", "vid-lift", 2))

		courses, err := repo.GetAll(context.Background())
		require.NoError(t, err)
		require.Len(t, courses, 2)
		require.Equal(t, "Manual Handling", courses[1].Title)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseGetQuestions(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCourseRepository(db)

	mock.ExpectQuery("FROM\\s+questions").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "question_text", "option_a", "option_b", "option_c", "correct_option"}).
			AddRow(int64(10), int64(1), "Which extinguisher for electrical fires?", "Water", "CO2", "Foam", "b"))

	questions, err := repo.GetQuestions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, "b", questions[0].CorrectOption)
	require.NoError(t, mock.ExpectationsWereMet())
}
