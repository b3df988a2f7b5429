package models

type UserProgress struct {
	UserID      int64 `db:"user_id"`
	CourseID    int64 `db:"course_id"`
	IsCompleted bool  `db:"is_completed"`
}
