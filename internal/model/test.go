package model

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates the candidate roles a test targets.
type Role string

const (
	RoleMember Role = "member"
	RoleMentor Role = "mentor"
)

// Test represents an entrance test with its ordered questions.
type Test struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Role            Role       `json:"role"`
	Description     string     `json:"description"`
	DurationMinutes int        `json:"duration_minutes"`
	Questions       []Question `json:"questions"`
	Published       bool       `json:"published"`
	CreatedAt       time.Time  `json:"created_at"`
}

// CandidateTest is a test with all answer keys stripped, safe to send to
// candidates before or during an attempt.
type CandidateTest struct {
	ID              uuid.UUID           `json:"id"`
	Title           string              `json:"title"`
	Role            Role                `json:"role"`
	Description     string              `json:"description"`
	DurationMinutes int                 `json:"duration_minutes"`
	Questions       []CandidateQuestion `json:"questions"`
	Published       bool                `json:"published"`
	CreatedAt       time.Time           `json:"created_at"`
}

// Redacted returns the candidate-safe view of the test.
func (t *Test) Redacted() *CandidateTest {
	questions := make([]CandidateQuestion, len(t.Questions))
	for i, q := range t.Questions {
		questions[i] = q.Redacted()
	}
	return &CandidateTest{
		ID:              t.ID,
		Title:           t.Title,
		Role:            t.Role,
		Description:     t.Description,
		DurationMinutes: t.DurationMinutes,
		Questions:       questions,
		Published:       t.Published,
		CreatedAt:       t.CreatedAt,
	}
}

// CreateTestRequest is the payload for creating a new test.
type CreateTestRequest struct {
	Title           string          `json:"title" binding:"required,min=3,max=255"`
	Role            string          `json:"role" binding:"required,oneof=member mentor"`
	Description     string          `json:"description" binding:"omitempty,max=4000"`
	DurationMinutes int             `json:"duration_minutes" binding:"omitempty,min=1,max=480"`
	Questions       []QuestionInput `json:"questions" binding:"omitempty,dive"`
	Published       bool            `json:"published"`
}

// UpdateTestRequest is the payload for updating an existing test. Nil fields
// keep their current value; a non-nil Questions slice replaces the whole set.
type UpdateTestRequest struct {
	Title           *string         `json:"title" binding:"omitempty,min=3,max=255"`
	Role            *string         `json:"role" binding:"omitempty,oneof=member mentor"`
	Description     *string         `json:"description" binding:"omitempty,max=4000"`
	DurationMinutes *int            `json:"duration_minutes" binding:"omitempty,min=1,max=480"`
	Questions       []QuestionInput `json:"questions" binding:"omitempty,dive"`
	Published       *bool           `json:"published" binding:"omitempty"`
}
