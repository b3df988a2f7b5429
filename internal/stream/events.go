package stream

import "time"

const (
	// UserRegisteredTopic is published after a new account is stored.
	UserRegisteredTopic = "user.registered"

	// KycSubmittedTopic is published after KYC documents are committed and the account is pending review.
	KycSubmittedTopic = "kyc.submitted"

	// CoursePassedTopic is published when a quiz submission is recorded as passed.
	CoursePassedTopic = "course.passed"
)

type UserRegistered struct {
	UserID       int64     `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registered_at"`
}

type KycSubmitted struct {
	AccountID   int64     `json:"account_id"`
	IDType      string    `json:"id_type"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type CoursePassed struct {
	UserID   int64     `json:"user_id"`
	CourseID int64     `json:"course_id"`
	PassedAt time.Time `json:"passed_at"`
}
