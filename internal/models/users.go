package models

import "time"

type User struct {
	ID                int64     `db:"id"`
	Name              string    `db:"name"`
	Email             string    `db:"email"`
	HashedPassword    string    `db:"password"`
	CurrentLevel      int       `db:"current_level"`
	TrainingCompleted bool      `db:"training_completed"`
	Status            string    `db:"status"`
	CreatedAt         time.Time `db:"created_at"`
}
