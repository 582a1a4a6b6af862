package services

import (
	"context"

	"etalase/internal/models"
	"etalase/internal/repositories"
)

// UserService handles the public user listing and lookup endpoints.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// ListUsers retrieves all users. Password hashes never leave the model's
// JSON encoding, so no scrubbing is needed here.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAll(ctx)
}

// GetUser retrieves a single user by storage identifier.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}
