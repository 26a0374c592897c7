package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/innoviii/entrance-backend/internal/model"
	"github.com/innoviii/entrance-backend/internal/repository"
)

// TestStore is the persistence surface the grading services need from the
// test side: a lookup that returns full questions, answer keys included.
type TestStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Test, error)
}

// SubmissionStore is the persistence surface for submissions. The pgx-backed
// repository satisfies it in production; tests inject in-memory fakes.
type SubmissionStore interface {
	Create(ctx context.Context, s *model.Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Submission, error)
	UpdateGrade(ctx context.Context, s *model.Submission) error
	List(ctx context.Context, f repository.SubmissionFilter) ([]model.Submission, error)
	ListByTest(ctx context.Context, testID uuid.UUID) ([]model.Submission, error)
}

var (
	_ TestStore       = (*repository.TestRepository)(nil)
	_ SubmissionStore = (*repository.SubmissionRepository)(nil)
)
