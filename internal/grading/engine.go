// Package grading implements the auto-grading core: per-question scoring,
// answer-set aggregation, and the submission status state machine. Everything
// here is pure; persistence belongs to the services that call it.
package grading

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/innoviii/entrance-backend/internal/model"
)

// Score returns the marks awarded for a single answered question: the
// question's full marks or zero, never partial credit.
//
// Malformed or mismatched answer shapes are never an error — they score zero.
// A hostile answer set must not abort grading of the rest of the submission.
func Score(q *model.Question, value json.RawMessage) float64 {
	switch q.Type {
	case model.QuestionSingleChoice, model.QuestionTrueFalse:
		// The key's first element is the only correct option index. The
		// answer must be a JSON number equal to it; "0" does not match 0.
		if len(q.Key) == 0 {
			return 0
		}
		var v interface{}
		if err := json.Unmarshal(value, &v); err != nil {
			return 0
		}
		n, ok := v.(float64)
		if !ok {
			return 0
		}
		if n == float64(q.Key[0]) {
			return q.Marks
		}
		return 0

	case model.QuestionMultiSelect:
		// Order-independent comparison via canonical strings. Duplicates are
		// preserved, so [1,3,3] only matches a key carrying the same
		// duplicates. A non-array answer canonicalizes to the empty set.
		if canonicalAnswer(value) == canonicalKey(q.Key) {
			return q.Marks
		}
		return 0

	default:
		// free-text and anything unrecognized: manual grading only.
		return 0
	}
}

// canonicalKey renders a key's option indexes in canonical form.
func canonicalKey(key []int) string {
	elems := make([]string, len(key))
	for i, k := range key {
		elems[i] = strconv.Itoa(k)
	}
	sort.Strings(elems)
	return strings.Join(elems, ",")
}

// canonicalAnswer renders a submitted answer value in canonical form.
// Anything that is not a JSON array collapses to "".
func canonicalAnswer(value json.RawMessage) string {
	var list []interface{}
	if err := json.Unmarshal(value, &list); err != nil {
		return ""
	}
	elems := make([]string, len(list))
	for i, v := range list {
		elems[i] = canonicalElement(v)
	}
	sort.Strings(elems)
	return strings.Join(elems, ",")
}

func canonicalElement(v interface{}) string {
	switch e := v.(type) {
	case float64:
		return strconv.FormatFloat(e, 'f', -1, 64)
	case string:
		return e
	case bool:
		return strconv.FormatBool(e)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", e)
	}
}

// AutoResult is the outcome of auto-grading a complete answer set.
type AutoResult struct {
	Score  float64
	Status model.SubmissionStatus
}

// Grade auto-grades a full answer set against a test. Each question id is
// scored at most once (first occurrence wins); answers referencing unknown
// question ids contribute zero.
func Grade(t *model.Test, answers []model.Answer) AutoResult {
	byID := make(map[string]*model.Question, len(t.Questions))
	for i := range t.Questions {
		byID[t.Questions[i].ID] = &t.Questions[i]
	}

	seen := make(map[string]bool, len(answers))
	var total float64
	for _, a := range answers {
		if seen[a.QuestionID] {
			continue
		}
		seen[a.QuestionID] = true

		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		total += Score(q, a.Value)
	}

	return AutoResult{Score: total, Status: InitialStatus(total)}
}
