package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTestRedacted(t *testing.T) {
	test := &Test{
		Title: "Member Entrance Test",
		Role:  RoleMember,
		Questions: []Question{
			{ID: "q1", Type: QuestionSingleChoice, Prompt: "Pick one", Options: []string{"a", "b"}, Key: []int{1}, Marks: 5},
			{ID: "q2", Type: QuestionFreeText, Prompt: "Explain", Marks: 4},
		},
	}

	redacted := test.Redacted()

	if len(redacted.Questions) != 2 {
		t.Fatalf("Redacted() kept %d questions, want 2", len(redacted.Questions))
	}
	if redacted.Questions[0].ID != "q1" || redacted.Questions[0].Marks != 5 {
		t.Errorf("Redacted() lost question fields: %+v", redacted.Questions[0])
	}

	// The serialized form must not leak the key anywhere.
	raw, err := json.Marshal(redacted)
	if err != nil {
		t.Fatalf("marshal redacted test: %v", err)
	}
	if strings.Contains(string(raw), `"key"`) {
		t.Errorf("redacted payload leaks answer key: %s", raw)
	}
}
