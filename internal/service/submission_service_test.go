package service

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/innoviii/entrance-backend/internal/model"
	"github.com/innoviii/entrance-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// ────────────────────────────────────────────────────────────────────────────
// In-memory stores
// ────────────────────────────────────────────────────────────────────────────

type fakeTestStore struct {
	tests map[uuid.UUID]*model.Test
}

func (f *fakeTestStore) GetByID(_ context.Context, id uuid.UUID) (*model.Test, error) {
	t, ok := f.tests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return t, nil
}

type fakeSubmissionStore struct {
	subs    map[uuid.UUID]model.Submission
	updates int
}

func (f *fakeSubmissionStore) Create(_ context.Context, s *model.Submission) error {
	s.ID = uuid.New()
	s.SubmittedAt = time.Now()
	f.subs[s.ID] = *s
	return nil
}

func (f *fakeSubmissionStore) GetByID(_ context.Context, id uuid.UUID) (*model.Submission, error) {
	s, ok := f.subs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := s
	return &copied, nil
}

func (f *fakeSubmissionStore) UpdateGrade(_ context.Context, s *model.Submission) error {
	stored, ok := f.subs[s.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.ManualScore = s.ManualScore
	stored.TotalScore = s.TotalScore
	stored.Status = s.Status
	f.subs[s.ID] = stored
	f.updates++
	return nil
}

func (f *fakeSubmissionStore) List(_ context.Context, _ repository.SubmissionFilter) ([]model.Submission, error) {
	var out []model.Submission
	for _, s := range f.subs {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSubmissionStore) ListByTest(_ context.Context, testID uuid.UUID) ([]model.Submission, error) {
	var out []model.Submission
	for _, s := range f.subs {
		if s.TestID == testID {
			out = append(out, s)
		}
	}
	return out, nil
}

func newFixture() (*SubmissionService, *fakeTestStore, *fakeSubmissionStore) {
	tests := &fakeTestStore{tests: make(map[uuid.UUID]*model.Test)}
	subs := &fakeSubmissionStore{subs: make(map[uuid.UUID]model.Submission)}
	svc := NewSubmissionService(tests, subs, zerolog.Nop())
	return svc, tests, subs
}

func sampleTest() *model.Test {
	return &model.Test{
		ID:    uuid.New(),
		Title: "Member Entrance Test",
		Role:  model.RoleMember,
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionSingleChoice, Key: []int{0}, Marks: 5},
			{ID: "q2", Type: model.QuestionMultiSelect, Key: []int{1, 2}, Marks: 5},
			{ID: "q3", Type: model.QuestionFreeText, Marks: 5},
		},
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Submit
// ────────────────────────────────────────────────────────────────────────────

func TestSubmit_AutoGradesAndPersists(t *testing.T) {
	svc, tests, subs := newFixture()
	test := sampleTest()
	tests.tests[test.ID] = test

	req := &model.SubmitTestRequest{
		TakerName:  "Ada",
		TakerEmail: "ada@example.com",
		Answers: []model.AnswerInput{
			{QuestionID: "q1", Value: json.RawMessage(`0`)},
			{QuestionID: "q2", Value: json.RawMessage(`[2,1]`)},
			{QuestionID: "q3", Value: json.RawMessage(`"hello"`)},
		},
	}

	sub, err := svc.Submit(context.Background(), test.ID, req)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if sub.AutoScore != 10 {
		t.Errorf("AutoScore = %v, want 10", sub.AutoScore)
	}
	if sub.TotalScore != 10 {
		t.Errorf("TotalScore = %v, want 10", sub.TotalScore)
	}
	if sub.ManualScore != 0 {
		t.Errorf("ManualScore = %v, want 0", sub.ManualScore)
	}
	if sub.Status != model.StatusPartiallyGraded {
		t.Errorf("Status = %q, want %q", sub.Status, model.StatusPartiallyGraded)
	}
	if sub.Role != model.RoleMember {
		t.Errorf("Role = %q, want copied from test", sub.Role)
	}
	if _, ok := subs.subs[sub.ID]; !ok {
		t.Error("submission was not persisted")
	}
}

func TestSubmit_ZeroScoreStartsPending(t *testing.T) {
	svc, tests, _ := newFixture()
	test := sampleTest()
	tests.tests[test.ID] = test

	req := &model.SubmitTestRequest{
		TakerName:  "Bob",
		TakerEmail: "bob@example.com",
		Answers: []model.AnswerInput{
			{QuestionID: "q3", Value: json.RawMessage(`"only free text"`)},
		},
	}

	sub, err := svc.Submit(context.Background(), test.ID, req)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if sub.Status != model.StatusPending {
		t.Errorf("Status = %q, want %q", sub.Status, model.StatusPending)
	}
}

func TestSubmit_UnknownTest(t *testing.T) {
	svc, _, _ := newFixture()

	req := &model.SubmitTestRequest{TakerName: "x", TakerEmail: "x@example.com"}
	_, err := svc.Submit(context.Background(), uuid.New(), req)
	if err != ErrTestNotFound {
		t.Errorf("Submit() error = %v, want ErrTestNotFound", err)
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Grade
// ────────────────────────────────────────────────────────────────────────────

func seedSubmission(subs *fakeSubmissionStore, autoScore float64, status model.SubmissionStatus) uuid.UUID {
	id := uuid.New()
	subs.subs[id] = model.Submission{
		ID:         id,
		TestID:     uuid.New(),
		TakerName:  "Ada",
		AutoScore:  autoScore,
		TotalScore: autoScore,
		Status:     status,
	}
	return id
}

func TestGrade_FinalizesSubmission(t *testing.T) {
	svc, _, subs := newFixture()
	id := seedSubmission(subs, 6, model.StatusPartiallyGraded)

	sub, err := svc.Grade(context.Background(), id, 3)
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}

	if sub.ManualScore != 3 {
		t.Errorf("ManualScore = %v, want 3", sub.ManualScore)
	}
	if sub.TotalScore != 9 {
		t.Errorf("TotalScore = %v, want 9", sub.TotalScore)
	}
	if sub.Status != model.StatusGraded {
		t.Errorf("Status = %q, want %q", sub.Status, model.StatusGraded)
	}
}

func TestGrade_RegradeOverwrites(t *testing.T) {
	svc, _, subs := newFixture()
	id := seedSubmission(subs, 6, model.StatusPartiallyGraded)

	if _, err := svc.Grade(context.Background(), id, 3); err != nil {
		t.Fatalf("first Grade() error = %v", err)
	}
	sub, err := svc.Grade(context.Background(), id, 5)
	if err != nil {
		t.Fatalf("second Grade() error = %v", err)
	}

	// Overwrite, not accumulate: 6+5, never 6+3+5.
	if sub.TotalScore != 11 {
		t.Errorf("TotalScore after regrade = %v, want 11", sub.TotalScore)
	}
	if sub.Status != model.StatusGraded {
		t.Errorf("Status = %q, want %q", sub.Status, model.StatusGraded)
	}
}

func TestGrade_PendingSubmission(t *testing.T) {
	svc, _, subs := newFixture()
	id := seedSubmission(subs, 0, model.StatusPending)

	sub, err := svc.Grade(context.Background(), id, 12)
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if sub.TotalScore != 12 || sub.Status != model.StatusGraded {
		t.Errorf("got total=%v status=%q, want 12/graded", sub.TotalScore, sub.Status)
	}
}

func TestGrade_InvalidScoreLeavesSubmissionUntouched(t *testing.T) {
	svc, _, subs := newFixture()
	id := seedSubmission(subs, 6, model.StatusPartiallyGraded)

	for _, score := range []float64{-1, math.NaN(), math.Inf(1)} {
		if _, err := svc.Grade(context.Background(), id, score); err != ErrInvalidManualScore {
			t.Errorf("Grade(%v) error = %v, want ErrInvalidManualScore", score, err)
		}
	}

	stored := subs.subs[id]
	if stored.ManualScore != 0 || stored.TotalScore != 6 || stored.Status != model.StatusPartiallyGraded {
		t.Errorf("submission mutated by failed grade: %+v", stored)
	}
	if subs.updates != 0 {
		t.Errorf("store updated %d times, want 0", subs.updates)
	}
}

func TestGrade_UnknownSubmission(t *testing.T) {
	svc, _, _ := newFixture()

	if _, err := svc.Grade(context.Background(), uuid.New(), 1); err != ErrSubmissionNotFound {
		t.Errorf("Grade() error = %v, want ErrSubmissionNotFound", err)
	}
}
