package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/innoviii/entrance-backend/internal/grading"
	"github.com/innoviii/entrance-backend/internal/model"
	"github.com/innoviii/entrance-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Common submission errors.
var (
	ErrTestNotFound       = errors.New("test not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrInvalidManualScore = errors.New("manual score must be a non-negative number")
	ErrIllegalTransition  = errors.New("illegal grading status transition")
)

// SubmissionService owns the submission lifecycle: it creates submissions
// with their one-time auto score (aggregator) and applies manual grading
// actions (reconciler). The auto score is written exactly once here and
// never recomputed.
type SubmissionService struct {
	tests TestStore
	subs  SubmissionStore
	log   zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(tests TestStore, subs SubmissionStore, log zerolog.Logger) *SubmissionService {
	return &SubmissionService{
		tests: tests,
		subs:  subs,
		log:   log.With().Str("component", "submission_service").Logger(),
	}
}

// Submit auto-grades a candidate's answer set against the test and persists
// the resulting submission as a single atomic write. The role is copied from
// the test at this moment and never re-derived.
func (s *SubmissionService) Submit(ctx context.Context, testID uuid.UUID, req *model.SubmitTestRequest) (*model.Submission, error) {
	test, err := s.tests.GetByID(ctx, testID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("get test: %w", err)
	}

	answers := make([]model.Answer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = model.Answer{QuestionID: a.QuestionID, Value: a.Value}
	}

	result := grading.Grade(test, answers)

	sub := &model.Submission{
		TestID:      test.ID,
		Role:        test.Role,
		TakerName:   req.TakerName,
		TakerEmail:  req.TakerEmail,
		Answers:     answers,
		AutoScore:   result.Score,
		ManualScore: 0,
		TotalScore:  result.Score,
		Status:      result.Status,
	}

	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	s.log.Info().
		Str("submission_id", sub.ID.String()).
		Str("test_id", test.ID.String()).
		Float64("auto_score", sub.AutoScore).
		Str("status", string(sub.Status)).
		Msg("Submission auto-graded")

	return sub, nil
}

// Grade applies a manual score to a submission: the new value overwrites any
// prior manual score, the total is recomputed from the stored auto score, and
// the status is finalized to graded. Validation happens before any read or
// write, so a failed grading action leaves the submission untouched.
func (s *SubmissionService) Grade(ctx context.Context, id uuid.UUID, manualScore float64) (*model.Submission, error) {
	if manualScore < 0 || math.IsNaN(manualScore) || math.IsInf(manualScore, 0) {
		return nil, ErrInvalidManualScore
	}

	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}

	if !grading.CanTransition(sub.Status, model.StatusGraded) {
		return nil, ErrIllegalTransition
	}

	sub.ManualScore = manualScore
	sub.TotalScore = sub.AutoScore + manualScore
	sub.Status = model.StatusGraded

	if err := s.subs.UpdateGrade(ctx, sub); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("update submission: %w", err)
	}

	s.log.Info().
		Str("submission_id", sub.ID.String()).
		Float64("manual_score", sub.ManualScore).
		Float64("total_score", sub.TotalScore).
		Msg("Submission manually graded")

	return sub, nil
}

// Get retrieves a single submission.
func (s *SubmissionService) Get(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return sub, nil
}

// List retrieves submissions matching the filter.
func (s *SubmissionService) List(ctx context.Context, f repository.SubmissionFilter) ([]model.Submission, error) {
	subs, err := s.subs.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}
