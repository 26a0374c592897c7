package model

// QuestionType enumerates the supported question kinds.
type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single-choice"
	QuestionTrueFalse    QuestionType = "true-false"
	QuestionMultiSelect  QuestionType = "multi-select"
	QuestionFreeText     QuestionType = "free-text"
)

// Question represents a single test question. Key holds the indexes of the
// correct options and must never reach a candidate-facing response.
type Question struct {
	ID      string       `json:"id"`
	Type    QuestionType `json:"type"`
	Prompt  string       `json:"prompt"`
	Options []string     `json:"options,omitempty"`
	Key     []int        `json:"key,omitempty"`
	Marks   float64      `json:"marks"`
}

// CandidateQuestion is a question with the answer key stripped, safe to send
// to candidates.
type CandidateQuestion struct {
	ID      string       `json:"id"`
	Type    QuestionType `json:"type"`
	Prompt  string       `json:"prompt"`
	Options []string     `json:"options,omitempty"`
	Marks   float64      `json:"marks"`
}

// Redacted returns the candidate-safe view of the question.
func (q Question) Redacted() CandidateQuestion {
	return CandidateQuestion{
		ID:      q.ID,
		Type:    q.Type,
		Prompt:  q.Prompt,
		Options: q.Options,
		Marks:   q.Marks,
	}
}

// QuestionInput is the payload shape for a question inside test create/update
// requests.
type QuestionInput struct {
	ID      string   `json:"id" binding:"required,max=64"`
	Type    string   `json:"type" binding:"required,oneof=single-choice true-false multi-select free-text"`
	Prompt  string   `json:"prompt" binding:"required,max=4000"`
	Options []string `json:"options" binding:"omitempty,dive,max=1000"`
	Key     []int    `json:"key" binding:"omitempty,dive,min=0"`
	Marks   float64  `json:"marks" binding:"min=0"`
}

// Question converts the input payload into a model Question.
func (in QuestionInput) Question() Question {
	return Question{
		ID:      in.ID,
		Type:    QuestionType(in.Type),
		Prompt:  in.Prompt,
		Options: in.Options,
		Key:     in.Key,
		Marks:   in.Marks,
	}
}
