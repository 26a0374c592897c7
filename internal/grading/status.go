package grading

import "github.com/innoviii/entrance-backend/internal/model"

// InitialStatus returns the lifecycle status for a freshly auto-graded
// submission. Any automatic credit at all marks the submission
// partially_graded; a zero auto score leaves it pending. A test with only
// free-text questions therefore always starts pending, even though it is
// fully awaiting human review — the heuristic keys on credit, not coverage.
func InitialStatus(autoScore float64) model.SubmissionStatus {
	if autoScore > 0 {
		return model.StatusPartiallyGraded
	}
	return model.StatusPending
}

// CanTransition reports whether a submission may move from one status to
// another. The only legal moves target graded: manual grading finalizes a
// pending or partially_graded submission, and re-grading an already graded
// one overwrites in place. graded is terminal; nothing leaves it.
func CanTransition(from, to model.SubmissionStatus) bool {
	if to != model.StatusGraded {
		return false
	}
	switch from {
	case model.StatusPending, model.StatusPartiallyGraded, model.StatusGraded:
		return true
	}
	return false
}
