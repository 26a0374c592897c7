package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/innoviii/entrance-backend/internal/model"
	"github.com/innoviii/entrance-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

// ErrAdminNotFound is returned when an admin lookup misses.
var ErrAdminNotFound = errors.New("admin not found")

// AdminService handles administrator account lookups and creation.
type AdminService struct {
	repo *repository.AdminRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(repo *repository.AdminRepository) *AdminService {
	return &AdminService{repo: repo}
}

// GetByEmail retrieves an admin by email.
func (s *AdminService) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return admin, nil
}

// GetByID retrieves an admin by id.
func (s *AdminService) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return admin, nil
}

// Create inserts a new admin account.
func (s *AdminService) Create(ctx context.Context, a *model.Admin) error {
	if err := s.repo.Create(ctx, a); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}
