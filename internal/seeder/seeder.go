package seeders

import (
	"context"
	"time"

	"github.com/cradoe/safetrain/internal/repository"
)

const defaultTimeout = 10 * time.Second

type Seeder struct {
	DB repository.Database
}

func New(DB repository.Database) *Seeder {
	return &Seeder{
		DB: DB,
	}
}

func (seeder *Seeder) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return seeder.seedCourses(ctx, trainingCourses)
}
