package service

import (
	"context"
	"fmt"

	"github.com/innoviii/entrance-backend/internal/repository"
)

// DashboardService exposes aggregate counters for the admin overview page.
type DashboardService struct {
	repo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Stats returns test and submission counters.
func (s *DashboardService) Stats(ctx context.Context) (*repository.DashboardStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return stats, nil
}
