package grading

import (
	"encoding/json"
	"testing"

	"github.com/innoviii/entrance-backend/internal/model"
)

func question(id string, qType model.QuestionType, key []int, marks float64) model.Question {
	return model.Question{ID: id, Type: qType, Prompt: "q", Key: key, Marks: marks}
}

func TestScore_SingleChoice(t *testing.T) {
	tests := []struct {
		name  string
		key   []int
		value string
		marks float64
		want  float64
	}{
		{name: "matching index", key: []int{2}, value: `2`, marks: 5, want: 5},
		{name: "wrong index", key: []int{2}, value: `1`, marks: 5, want: 0},
		{name: "zero index matches", key: []int{0}, value: `0`, marks: 3, want: 3},
		{name: "string is not coerced", key: []int{2}, value: `"2"`, marks: 5, want: 0},
		{name: "array does not match", key: []int{2}, value: `[2]`, marks: 5, want: 0},
		{name: "empty key never matches", key: nil, value: `0`, marks: 5, want: 0},
		{name: "null value", key: []int{1}, value: `null`, marks: 5, want: 0},
		{name: "malformed json", key: []int{1}, value: `{"broken`, marks: 5, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := question("q1", model.QuestionSingleChoice, tc.key, tc.marks)
			if got := Score(&q, json.RawMessage(tc.value)); got != tc.want {
				t.Errorf("Score() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScore_TrueFalse(t *testing.T) {
	q := question("q1", model.QuestionTrueFalse, []int{1}, 2)

	if got := Score(&q, json.RawMessage(`1`)); got != 2 {
		t.Errorf("correct answer: Score() = %v, want 2", got)
	}
	if got := Score(&q, json.RawMessage(`0`)); got != 0 {
		t.Errorf("wrong answer: Score() = %v, want 0", got)
	}
	if got := Score(&q, json.RawMessage(`true`)); got != 0 {
		t.Errorf("boolean answer: Score() = %v, want 0", got)
	}
}

func TestScore_MultiSelect(t *testing.T) {
	tests := []struct {
		name  string
		key   []int
		value string
		marks float64
		want  float64
	}{
		{name: "exact order", key: []int{1, 3}, value: `[1,3]`, marks: 5, want: 5},
		{name: "reversed order", key: []int{1, 3}, value: `[3,1]`, marks: 5, want: 5},
		{name: "extra duplicate", key: []int{1, 3}, value: `[1,3,3]`, marks: 5, want: 0},
		{name: "duplicates on both sides", key: []int{1, 3, 3}, value: `[3,3,1]`, marks: 5, want: 5},
		{name: "missing element", key: []int{1, 3}, value: `[1]`, marks: 5, want: 0},
		{name: "extra element", key: []int{1, 3}, value: `[1,2,3]`, marks: 5, want: 0},
		{name: "non-array scores zero", key: []int{1, 3}, value: `1`, marks: 5, want: 0},
		{name: "string scores zero", key: []int{1, 3}, value: `"1,3"`, marks: 5, want: 0},
		{name: "empty answer vs non-empty key", key: []int{1}, value: `[]`, marks: 5, want: 0},
		{name: "malformed json", key: []int{1, 3}, value: `[1,`, marks: 5, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := question("q1", model.QuestionMultiSelect, tc.key, tc.marks)
			if got := Score(&q, json.RawMessage(tc.value)); got != tc.want {
				t.Errorf("Score() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScore_FreeTextNeverAutoGraded(t *testing.T) {
	long := make([]byte, 0, 20000)
	for i := 0; i < 10000; i++ {
		long = append(long, 'a', 'b')
	}
	values := []string{`""`, `"hello"`, `"` + string(long) + `"`, `42`, `null`}

	q := question("q1", model.QuestionFreeText, nil, 10)
	for _, v := range values {
		if got := Score(&q, json.RawMessage(v)); got != 0 {
			t.Errorf("free-text answer %.20q: Score() = %v, want 0", v, got)
		}
	}
}

func TestGrade_SumsAwards(t *testing.T) {
	test := &model.Test{Questions: []model.Question{
		question("q1", model.QuestionSingleChoice, []int{0}, 5),
		question("q2", model.QuestionMultiSelect, []int{1, 2}, 5),
		question("q3", model.QuestionFreeText, nil, 5),
	}}

	answers := []model.Answer{
		{QuestionID: "q1", Value: json.RawMessage(`0`)},
		{QuestionID: "q2", Value: json.RawMessage(`[2,1]`)},
		{QuestionID: "q3", Value: json.RawMessage(`"hello"`)},
	}

	got := Grade(test, answers)
	if got.Score != 10 {
		t.Errorf("Grade().Score = %v, want 10", got.Score)
	}
	if got.Status != model.StatusPartiallyGraded {
		t.Errorf("Grade().Status = %q, want %q", got.Status, model.StatusPartiallyGraded)
	}
}

func TestGrade_UnknownQuestionIgnored(t *testing.T) {
	test := &model.Test{Questions: []model.Question{
		question("q1", model.QuestionSingleChoice, []int{1}, 5),
	}}

	answers := []model.Answer{
		{QuestionID: "q1", Value: json.RawMessage(`1`)},
		{QuestionID: "ghost", Value: json.RawMessage(`1`)},
	}

	got := Grade(test, answers)
	if got.Score != 5 {
		t.Errorf("Grade().Score = %v, want 5", got.Score)
	}
}

func TestGrade_DuplicateAnswersCountOnce(t *testing.T) {
	test := &model.Test{Questions: []model.Question{
		question("q1", model.QuestionSingleChoice, []int{1}, 5),
	}}

	// First occurrence wins: the correct duplicate arrives too late.
	answers := []model.Answer{
		{QuestionID: "q1", Value: json.RawMessage(`0`)},
		{QuestionID: "q1", Value: json.RawMessage(`1`)},
	}
	if got := Grade(test, answers); got.Score != 0 {
		t.Errorf("late correct duplicate: Score = %v, want 0", got.Score)
	}

	// And a correct first occurrence is not double counted.
	answers = []model.Answer{
		{QuestionID: "q1", Value: json.RawMessage(`1`)},
		{QuestionID: "q1", Value: json.RawMessage(`1`)},
	}
	if got := Grade(test, answers); got.Score != 5 {
		t.Errorf("repeated correct answer: Score = %v, want 5", got.Score)
	}
}

func TestGrade_AllWrongIsPending(t *testing.T) {
	test := &model.Test{Questions: []model.Question{
		question("q1", model.QuestionSingleChoice, []int{1}, 5),
		question("q2", model.QuestionFreeText, nil, 5),
	}}

	answers := []model.Answer{
		{QuestionID: "q1", Value: json.RawMessage(`0`)},
		{QuestionID: "q2", Value: json.RawMessage(`"essay text"`)},
	}

	got := Grade(test, answers)
	if got.Score != 0 {
		t.Errorf("Grade().Score = %v, want 0", got.Score)
	}
	if got.Status != model.StatusPending {
		t.Errorf("Grade().Status = %q, want %q", got.Status, model.StatusPending)
	}
}
