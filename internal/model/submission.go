package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus enumerates the grading lifecycle states of a submission.
type SubmissionStatus string

const (
	StatusPending         SubmissionStatus = "pending"
	StatusPartiallyGraded SubmissionStatus = "partially_graded"
	StatusGraded          SubmissionStatus = "graded"
)

// Answer is a candidate's answer to one question. Value keeps the raw JSON
// shape (a single index, a list of indexes, or free text); the grading engine
// decides what to do with it.
type Answer struct {
	QuestionID string          `json:"question_id"`
	Value      json.RawMessage `json:"value"`
}

// Submission represents one candidate attempt at a test. Answers and AutoScore
// are set once at creation and never recomputed; ManualScore is written only
// by a grading action, which also refreshes TotalScore and Status.
type Submission struct {
	ID          uuid.UUID        `json:"id"`
	TestID      uuid.UUID        `json:"test_id"`
	Role        Role             `json:"role"`
	TakerName   string           `json:"taker_name"`
	TakerEmail  string           `json:"taker_email"`
	Answers     []Answer         `json:"answers"`
	AutoScore   float64          `json:"auto_score"`
	ManualScore float64          `json:"manual_score"`
	TotalScore  float64          `json:"total_score"`
	Status      SubmissionStatus `json:"status"`
	SubmittedAt time.Time        `json:"submitted_at"`
}

// AnswerInput is the payload shape for one answer in a submit request.
type AnswerInput struct {
	QuestionID string          `json:"question_id" binding:"required,max=64"`
	Value      json.RawMessage `json:"value"`
}

// SubmitTestRequest is the payload for a candidate submitting a test.
type SubmitTestRequest struct {
	TakerName  string        `json:"taker_name" binding:"required,min=1,max=255"`
	TakerEmail string        `json:"taker_email" binding:"required,email"`
	Answers    []AnswerInput `json:"answers" binding:"required,dive"`
}

// GradeSubmissionRequest is the payload for manually grading a submission.
// The pointer distinguishes a missing field from an explicit zero.
type GradeSubmissionRequest struct {
	ManualScore *float64 `json:"manual_score" binding:"required"`
}
