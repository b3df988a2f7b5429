package mocks

import (
	"context"
	"database/sql"

	"github.com/cradoe/safetrain/internal/repository"
	"github.com/jmoiron/sqlx"
)

// MockDatabase hands out the mock repositories it holds.
type MockDatabase struct {
	Users      *MockUserRepo
	Activities *MockActivityRepo
	Kycs       *MockKycRepo
	Courses    *MockCourseRepo
	Progresses *MockProgressRepo
	PingErr    error
}

func NewMockDatabase() *MockDatabase {
	return &MockDatabase{
		Users:      new(MockUserRepo),
		Activities: new(MockActivityRepo),
		Kycs:       new(MockKycRepo),
		Courses:    new(MockCourseRepo),
		Progresses: new(MockProgressRepo),
	}
}

func (m *MockDatabase) User() repository.UserRepository         { return m.Users }
func (m *MockDatabase) Activity() repository.ActivityRepository { return m.Activities }
func (m *MockDatabase) KYC() repository.KycRepository           { return m.Kycs }
func (m *MockDatabase) Course() repository.CourseRepository     { return m.Courses }
func (m *MockDatabase) Progress() repository.ProgressRepository { return m.Progresses }

func (m *MockDatabase) Ping(ctx context.Context) error { return m.PingErr }
func (m *MockDatabase) Close() error                   { return nil }
func (m *MockDatabase) Stats() sql.DBStats             { return sql.DBStats{} }

func (m *MockDatabase) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return nil, sql.ErrConnDone
}
