package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/innoviii/entrance-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestRepository handles test and question data access.
type TestRepository struct {
	pool *pgxpool.Pool
}

// NewTestRepository creates a new TestRepository.
func NewTestRepository(pool *pgxpool.Pool) *TestRepository {
	return &TestRepository{pool: pool}
}

// GetByID retrieves a test with its ordered questions, answer keys included.
func (r *TestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Test, error) {
	t := &model.Test{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, role, description, duration_minutes, published, created_at
		 FROM tests WHERE id = $1`, id,
	).Scan(&t.ID, &t.Title, &t.Role, &t.Description, &t.DurationMinutes, &t.Published, &t.CreatedAt)
	if err != nil {
		return nil, err
	}

	if t.Questions, err = r.questionsForTest(ctx, t.ID); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return t, nil
}

// List retrieves all tests without their questions, newest first.
func (r *TestRepository) List(ctx context.Context) ([]model.Test, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, role, description, duration_minutes, published, created_at
		 FROM tests ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []model.Test
	for rows.Next() {
		var t model.Test
		if err := rows.Scan(&t.ID, &t.Title, &t.Role, &t.Description,
			&t.DurationMinutes, &t.Published, &t.CreatedAt); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

// ListPublishedByRole retrieves published tests for a role, questions included.
func (r *TestRepository) ListPublishedByRole(ctx context.Context, role model.Role) ([]model.Test, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, role, description, duration_minutes, published, created_at
		 FROM tests WHERE role = $1 AND published = TRUE
		 ORDER BY created_at DESC`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []model.Test
	for rows.Next() {
		var t model.Test
		if err := rows.Scan(&t.ID, &t.Title, &t.Role, &t.Description,
			&t.DurationMinutes, &t.Published, &t.CreatedAt); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tests {
		if tests[i].Questions, err = r.questionsForTest(ctx, tests[i].ID); err != nil {
			return nil, fmt.Errorf("load questions: %w", err)
		}
	}
	return tests, nil
}

// ListPublished retrieves all published tests with questions, any role.
// Used for cache prewarming on application startup.
func (r *TestRepository) ListPublished(ctx context.Context) ([]model.Test, error) {
	member, err := r.ListPublishedByRole(ctx, model.RoleMember)
	if err != nil {
		return nil, err
	}
	mentor, err := r.ListPublishedByRole(ctx, model.RoleMentor)
	if err != nil {
		return nil, err
	}
	return append(member, mentor...), nil
}

// Create inserts a new test and its questions in one transaction.
func (r *TestRepository) Create(ctx context.Context, t *model.Test) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO tests (title, role, description, duration_minutes, published)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, created_at`,
			t.Title, t.Role, t.Description, t.DurationMinutes, t.Published,
		).Scan(&t.ID, &t.CreatedAt)
		if err != nil {
			return err
		}
		return insertQuestions(ctx, tx, t.ID, t.Questions)
	})
}

// Update rewrites a test row and replaces its full question set in one
// transaction. Returns pgx.ErrNoRows if the test does not exist.
func (r *TestRepository) Update(ctx context.Context, t *model.Test) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE tests
			 SET title = $1, role = $2, description = $3, duration_minutes = $4, published = $5
			 WHERE id = $6`,
			t.Title, t.Role, t.Description, t.DurationMinutes, t.Published, t.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE test_id = $1`, t.ID); err != nil {
			return err
		}
		return insertQuestions(ctx, tx, t.ID, t.Questions)
	})
}

// DeleteCascade removes a test together with all submissions referencing it.
// Both deletes run in a single transaction so no orphaned submission can
// survive a partial failure. Returns pgx.ErrNoRows if the test does not exist.
func (r *TestRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM submissions WHERE test_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM tests WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

func insertQuestions(ctx context.Context, tx pgx.Tx, testID uuid.UUID, questions []model.Question) error {
	for i, q := range questions {
		_, err := tx.Exec(ctx,
			`INSERT INTO questions (test_id, id, type, prompt, options, answer_key, marks, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			testID, q.ID, q.Type, q.Prompt, q.Options, q.Key, q.Marks, i)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *TestRepository) questionsForTest(ctx context.Context, testID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, type, prompt, options, answer_key, marks
		 FROM questions WHERE test_id = $1
		 ORDER BY position ASC`, testID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Type, &q.Prompt, &q.Options, &q.Key, &q.Marks); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
