package models

type Course struct {
	ID      int64  `db:"id"`
	Title   string `db:"title"`
	VideoID string `db:"video_id"`
	Level   int    `db:"level"`
}

type Question struct {
	ID            int64  `db:"id"`
	CourseID      int64  `db:"course_id"`
	QuestionText  string `db:"question_text"`
	OptionA       string `db:"option_a"`
	OptionB       string `db:"option_b"`
	OptionC       string `db:"option_c"`
	CorrectOption string `db:"correct_option"`
}
