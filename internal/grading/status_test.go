package grading

import (
	"testing"

	"github.com/innoviii/entrance-backend/internal/model"
)

func TestInitialStatus(t *testing.T) {
	tests := []struct {
		autoScore float64
		want      model.SubmissionStatus
	}{
		{autoScore: 0, want: model.StatusPending},
		{autoScore: 0.5, want: model.StatusPartiallyGraded},
		{autoScore: 10, want: model.StatusPartiallyGraded},
	}

	for _, tc := range tests {
		if got := InitialStatus(tc.autoScore); got != tc.want {
			t.Errorf("InitialStatus(%v) = %q, want %q", tc.autoScore, got, tc.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	statuses := []model.SubmissionStatus{
		model.StatusPending,
		model.StatusPartiallyGraded,
		model.StatusGraded,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := to == model.StatusGraded
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", from, to, got, want)
			}
		}
	}

	if CanTransition(model.StatusGraded, model.StatusPending) {
		t.Error("graded must be terminal")
	}
	if CanTransition("bogus", model.StatusGraded) {
		t.Error("unknown source status must not transition")
	}
}
