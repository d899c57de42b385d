package service

import (
	"context"

	"github.com/teacherly/teacherly-backend/internal/model"
	"github.com/teacherly/teacherly-backend/internal/repository"
)

// UserService handles account lookups and the admin account surface.
type UserService struct {
	users *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// List retrieves a page of users.
func (s *UserService) List(ctx context.Context, page, perPage int) ([]model.User, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return s.users.List(ctx, page, perPage)
}

// SetActive flips a user's active flag. Deactivation is a soft disable: the
// row stays, the account simply stops authenticating. There is no delete.
func (s *UserService) SetActive(ctx context.Context, id int, active bool) (*model.User, error) {
	return s.users.Update(ctx, id, model.UserPatch{IsActive: &active})
}
