package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/innoviii/entrance-backend/internal/model"
)

func TestWriteCSV(t *testing.T) {
	tests := &fakeTestStore{tests: make(map[uuid.UUID]*model.Test)}
	subs := &fakeSubmissionStore{subs: make(map[uuid.UUID]model.Submission)}
	svc := NewExportService(tests, subs)

	test := &model.Test{ID: uuid.New(), Title: `Member "Entrance" Test`}
	tests.tests[test.ID] = test

	id := uuid.New()
	subs.subs[id] = model.Submission{
		ID:          id,
		TestID:      test.ID,
		TakerName:   "Ada Lovelace",
		TakerEmail:  "ada@example.com",
		AutoScore:   10,
		ManualScore: 3.5,
		TotalScore:  13.5,
		Status:      model.StatusGraded,
		SubmittedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	if err := svc.WriteCSV(context.Background(), test.ID, &buf); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d CSV lines, want 2 (header + row): %q", len(lines), buf.String())
	}
	if lines[0] != "Name,Email,Test Title,Auto Score,Manual Score,Total Score,Status,Submitted At" {
		t.Errorf("unexpected header: %q", lines[0])
	}

	row := lines[1]
	for _, want := range []string{"Ada Lovelace", "ada@example.com", "10", "3.5", "13.5", "graded", "2026-03-01T12:00:00Z"} {
		if !strings.Contains(row, want) {
			t.Errorf("row %q missing %q", row, want)
		}
	}
	// The quoted title must survive CSV escaping.
	if !strings.Contains(row, `"Member ""Entrance"" Test"`) {
		t.Errorf("row %q does not escape the test title", row)
	}
}

func TestWriteCSV_NoSubmissions(t *testing.T) {
	tests := &fakeTestStore{tests: make(map[uuid.UUID]*model.Test)}
	subs := &fakeSubmissionStore{subs: make(map[uuid.UUID]model.Submission)}
	svc := NewExportService(tests, subs)

	test := &model.Test{ID: uuid.New(), Title: "Empty"}
	tests.tests[test.ID] = test

	var buf bytes.Buffer
	if err := svc.WriteCSV(context.Background(), test.ID, &buf); err != ErrNoSubmissions {
		t.Errorf("WriteCSV() error = %v, want ErrNoSubmissions", err)
	}
}

func TestWriteCSV_UnknownTest(t *testing.T) {
	tests := &fakeTestStore{tests: make(map[uuid.UUID]*model.Test)}
	subs := &fakeSubmissionStore{subs: make(map[uuid.UUID]model.Submission)}
	svc := NewExportService(tests, subs)

	var buf bytes.Buffer
	if err := svc.WriteCSV(context.Background(), uuid.New(), &buf); err != ErrTestNotFound {
		t.Errorf("WriteCSV() error = %v, want ErrTestNotFound", err)
	}
}
