package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardStats aggregates counters for the admin overview.
type DashboardStats struct {
	TotalTests         int64 `json:"total_tests"`
	PublishedTests     int64 `json:"published_tests"`
	TotalSubmissions   int64 `json:"total_submissions"`
	PendingSubmissions int64 `json:"pending_submissions"`
	PartiallyGraded    int64 `json:"partially_graded_submissions"`
	GradedSubmissions  int64 `json:"graded_submissions"`
}

// DashboardRepository computes aggregate counters for the admin dashboard.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// Stats returns test and submission counters in a single round trip each.
func (r *DashboardRepository) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE published) FROM tests`,
	).Scan(&stats.TotalTests, &stats.PublishedTests)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'pending'),
		        COUNT(*) FILTER (WHERE status = 'partially_graded'),
		        COUNT(*) FILTER (WHERE status = 'graded')
		 FROM submissions`,
	).Scan(&stats.TotalSubmissions, &stats.PendingSubmissions,
		&stats.PartiallyGraded, &stats.GradedSubmissions)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
