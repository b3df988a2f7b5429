package seeders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type seedQuestion struct {
	Text    string
	Options [3]string
	Correct string
}

type seedCourse struct {
	Title     string
	VideoID   string
	Level     int
	Questions []seedQuestion
}

var trainingCourses = []seedCourse{
	{
		Title:   "Workplace Safety Induction",
		VideoID: "hs-induction-01",
		Level:   1,
		Questions: []seedQuestion{
			{"Who is responsible for health and safety at work?", [3]string{"Only the employer", "Everyone in the workplace", "Only the safety officer"}, "b"},
			{"What should you do first when you spot a hazard?", [3]string{"Ignore it", "Report it", "Fix it yourself regardless of training"}, "b"},
		},
	},
	{
		Title:   "Fire Safety",
		VideoID: "hs-fire-02",
		Level:   2,
		Questions: []seedQuestion{
			{"Which extinguisher is safe on electrical fires?", [3]string{"Water", "CO2", "Foam"}, "b"},
			{"Where should you go when the alarm sounds?", [3]string{"The assembly point", "Back to your desk", "The car park exit ramp"}, "a"},
		},
	},
	{
		Title:   "Manual Handling",
		VideoID: "hs-lifting-03",
		Level:   3,
		Questions: []seedQuestion{
			{"How should you lift a heavy box?", [3]string{"Bend your back", "Bend your knees and keep it close", "Twist while lifting"}, "b"},
		},
	},
	{
		Title:   "First Aid Basics",
		VideoID: "hs-firstaid-04",
		Level:   4,
		Questions: []seedQuestion{
			{"What does the R in DRABC stand for?", [3]string{"Response", "Recovery", "Rest"}, "a"},
		},
	},
}

// seedCourses inserts the training courses and their quiz questions in one transaction.
// Existing courses are kept and only missing questions are added, so seeding can be repeated.
func (seeder *Seeder) seedCourses(ctx context.Context, courses []seedCourse) error {
	tx, err := seeder.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, course := range courses {
		var courseID int64
		err := tx.QueryRowContext(ctx, `
			INSERT INTO courses (title, video_id, level)
			VALUES ($1, $2, $3)
			ON CONFLICT (title) DO NOTHING
			RETURNING id`,
			course.Title, course.VideoID, course.Level,
		).Scan(&courseID)

		// the course already exists, look it up so its questions are still seeded
		if errors.Is(err, sql.ErrNoRows) {
			err = tx.QueryRowContext(ctx, `SELECT id FROM courses WHERE title = $1`, course.Title).Scan(&courseID)
		}

		if err != nil {
			return fmt.Errorf("insert or retrieve course %q: %w", course.Title, err)
		}

		for _, question := range course.Questions {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO questions (course_id, question_text, option_a, option_b, option_c, correct_option)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (course_id, question_text) DO NOTHING`,
				courseID, question.Text, question.Options[0], question.Options[1], question.Options[2], question.Correct,
			)
			if err != nil {
				return fmt.Errorf("insert question %q for course %q: %w", question.Text, course.Title, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
