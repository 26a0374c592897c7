package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNoSubmissions is returned when an export targets a test that has no
// submissions yet.
var ErrNoSubmissions = errors.New("no submissions found for this test")

// ExportService flattens graded submissions into CSV rows. Pure formatting
// over already persisted data; it never touches scores or statuses.
type ExportService struct {
	tests TestStore
	subs  SubmissionStore
}

// NewExportService creates a new ExportService.
func NewExportService(tests TestStore, subs SubmissionStore) *ExportService {
	return &ExportService{tests: tests, subs: subs}
}

var csvHeader = []string{
	"Name", "Email", "Test Title",
	"Auto Score", "Manual Score", "Total Score",
	"Status", "Submitted At",
}

// WriteCSV streams one CSV row per submission of the given test to w.
func (s *ExportService) WriteCSV(ctx context.Context, testID uuid.UUID, w io.Writer) error {
	test, err := s.tests.GetByID(ctx, testID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTestNotFound
		}
		return fmt.Errorf("get test: %w", err)
	}

	subs, err := s.subs.ListByTest(ctx, testID)
	if err != nil {
		return fmt.Errorf("list submissions: %w", err)
	}
	if len(subs) == 0 {
		return ErrNoSubmissions
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, sub := range subs {
		row := []string{
			sub.TakerName,
			sub.TakerEmail,
			test.Title,
			formatScore(sub.AutoScore),
			formatScore(sub.ManualScore),
			formatScore(sub.TotalScore),
			string(sub.Status),
			sub.SubmittedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
