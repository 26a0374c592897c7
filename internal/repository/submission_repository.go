package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/innoviii/entrance-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubmissionFilter narrows admin submission listings. Zero values mean
// "no filter"; Name and Email are case-insensitive substring matches.
type SubmissionFilter struct {
	TestID *uuid.UUID
	Status *model.SubmissionStatus
	Name   string
	Email  string
}

// SubmissionRepository handles submission data access.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

const submissionColumns = `id, test_id, role, taker_name, taker_email, answers,
	auto_score, manual_score, total_score, status, submitted_at`

// Create inserts a new submission as a single atomic write.
func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO submissions
		   (test_id, role, taker_name, taker_email, answers,
		    auto_score, manual_score, total_score, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, submitted_at`,
		s.TestID, s.Role, s.TakerName, s.TakerEmail, s.Answers,
		s.AutoScore, s.ManualScore, s.TotalScore, s.Status,
	).Scan(&s.ID, &s.SubmittedAt)
}

// GetByID retrieves a submission by id.
func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	s := &model.Submission{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id,
	).Scan(&s.ID, &s.TestID, &s.Role, &s.TakerName, &s.TakerEmail, &s.Answers,
		&s.AutoScore, &s.ManualScore, &s.TotalScore, &s.Status, &s.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateGrade persists the grading fields of a submission. Answers and the
// auto score are immutable after creation and are deliberately not written.
// Returns pgx.ErrNoRows if the submission does not exist.
func (r *SubmissionRepository) UpdateGrade(ctx context.Context, s *model.Submission) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE submissions
		 SET manual_score = $1, total_score = $2, status = $3
		 WHERE id = $4`,
		s.ManualScore, s.TotalScore, s.Status, s.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List retrieves submissions matching the filter, newest first.
func (r *SubmissionRepository) List(ctx context.Context, f SubmissionFilter) ([]model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE 1=1`
	var args []interface{}

	if f.TestID != nil {
		args = append(args, *f.TestID)
		query += fmt.Sprintf(" AND test_id = $%d", len(args))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		query += fmt.Sprintf(" AND taker_name ILIKE $%d", len(args))
	}
	if f.Email != "" {
		args = append(args, "%"+f.Email+"%")
		query += fmt.Sprintf(" AND taker_email ILIKE $%d", len(args))
	}

	query += " ORDER BY submitted_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

// ListByTest retrieves all submissions for one test, newest first.
func (r *SubmissionRepository) ListByTest(ctx context.Context, testID uuid.UUID) ([]model.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+submissionColumns+` FROM submissions
		 WHERE test_id = $1 ORDER BY submitted_at DESC`, testID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

func scanSubmissions(rows pgx.Rows) ([]model.Submission, error) {
	var subs []model.Submission
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.TestID, &s.Role, &s.TakerName, &s.TakerEmail,
			&s.Answers, &s.AutoScore, &s.ManualScore, &s.TotalScore, &s.Status,
			&s.SubmittedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
