package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/innoviii/entrance-backend/internal/config"
	"github.com/innoviii/entrance-backend/internal/model"
	"github.com/innoviii/entrance-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// TestService handles test management and the candidate-facing redacted
// views. Candidate payloads are cached in Redis; every mutation invalidates
// the cached payload so a stale key list can never be served.
type TestService struct {
	repo *repository.TestRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewTestService creates a new TestService.
func NewTestService(repo *repository.TestRepository, rdb *redis.Client, log zerolog.Logger) *TestService {
	return &TestService{
		repo: repo,
		rdb:  rdb,
		log:  log.With().Str("component", "test_service").Logger(),
	}
}

// Create stores a new test with its questions.
func (s *TestService) Create(ctx context.Context, req *model.CreateTestRequest) (*model.Test, error) {
	test := &model.Test{
		Title:           req.Title,
		Role:            model.Role(req.Role),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Questions:       convertQuestions(req.Questions),
		Published:       req.Published,
	}

	if err := s.repo.Create(ctx, test); err != nil {
		return nil, fmt.Errorf("create test: %w", err)
	}

	s.log.Info().Str("test_id", test.ID.String()).Str("title", test.Title).Msg("Test created")
	return test, nil
}

// Get retrieves a test with full questions and keys (administrative view).
func (s *TestService) Get(ctx context.Context, id uuid.UUID) (*model.Test, error) {
	test, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("get test: %w", err)
	}
	return test, nil
}

// List retrieves all tests without questions (administrative listing).
func (s *TestService) List(ctx context.Context) ([]model.Test, error) {
	tests, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	return tests, nil
}

// Update applies a partial update; a non-nil Questions slice replaces the
// whole question set. The cached candidate payload is invalidated.
func (s *TestService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateTestRequest) (*model.Test, error) {
	test, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("get test: %w", err)
	}

	if req.Title != nil {
		test.Title = *req.Title
	}
	if req.Role != nil {
		test.Role = model.Role(*req.Role)
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		test.DurationMinutes = *req.DurationMinutes
	}
	if req.Questions != nil {
		test.Questions = convertQuestions(req.Questions)
	}
	if req.Published != nil {
		test.Published = *req.Published
	}

	if err := s.repo.Update(ctx, test); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("update test: %w", err)
	}

	s.invalidatePayload(ctx, id)
	return test, nil
}

// Delete removes a test and all submissions referencing it in one
// transaction, then drops the cached candidate payload.
func (s *TestService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTestNotFound
		}
		return fmt.Errorf("delete test: %w", err)
	}

	s.invalidatePayload(ctx, id)
	s.log.Info().Str("test_id", id.String()).Msg("Test and its submissions deleted")
	return nil
}

// ListForCandidates retrieves published tests for a role with keys stripped.
func (s *TestService) ListForCandidates(ctx context.Context, role model.Role) ([]*model.CandidateTest, error) {
	tests, err := s.repo.ListPublishedByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list published tests: %w", err)
	}

	redacted := make([]*model.CandidateTest, len(tests))
	for i := range tests {
		redacted[i] = tests[i].Redacted()
	}
	return redacted, nil
}

// GetForCandidate retrieves the redacted view of a test, serving the Redis
// payload cache when warm and healing it on a miss.
func (s *TestService) GetForCandidate(ctx context.Context, id uuid.UUID) (*model.CandidateTest, error) {
	key := config.CacheKey.TestPayloadKey(id.String())

	cached, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		payload := &model.CandidateTest{}
		if err := json.Unmarshal([]byte(cached), payload); err == nil {
			return payload, nil
		}
		// Corrupt cache entry: fall through to the database.
		s.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Payload cache read failed, falling back to database")
	}

	test, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("get test: %w", err)
	}

	payload := test.Redacted()
	s.cachePayload(ctx, payload)
	return payload, nil
}

// PrewarmPublished caches redacted payloads for all published tests.
// Called once at startup so the first candidate request never pays the
// redaction cost under a thundering herd.
func (s *TestService) PrewarmPublished(ctx context.Context) error {
	tests, err := s.repo.ListPublished(ctx)
	if err != nil {
		return fmt.Errorf("list published tests: %w", err)
	}

	for i := range tests {
		s.cachePayload(ctx, tests[i].Redacted())
	}

	s.log.Info().Int("tests", len(tests)).Msg("Candidate payload cache prewarmed")
	return nil
}

func (s *TestService) cachePayload(ctx context.Context, payload *model.CandidateTest) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	key := config.CacheKey.TestPayloadKey(payload.ID.String())
	if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		s.log.Warn().Err(err).Str("test_id", payload.ID.String()).Msg("Payload cache write failed")
	}
}

func (s *TestService) invalidatePayload(ctx context.Context, id uuid.UUID) {
	key := config.CacheKey.TestPayloadKey(id.String())
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.log.Warn().Err(err).Str("test_id", id.String()).Msg("Payload cache invalidation failed")
	}
}

func convertQuestions(inputs []model.QuestionInput) []model.Question {
	questions := make([]model.Question, len(inputs))
	for i, in := range inputs {
		questions[i] = in.Question()
	}
	return questions
}
