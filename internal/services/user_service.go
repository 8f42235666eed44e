// internal/services/user_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bazarcheck/bazarcheck-backend/internal/apperr"
	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns accounts for the admin console, optionally narrowed by an
// email substring.
func (s *UserService) List(emailFilter string, params utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.users.List(emailFilter, params)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list users", err)
	}
	return users, total, nil
}

func (s *UserService) GetByEmail(email string) (*models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return user, nil
}

// UpdateRole sets a user's role directly. Admin-only; the handler gates it.
func (s *UserService) UpdateRole(id uuid.UUID, role models.Role) error {
	if !models.ValidRole(role) {
		return apperr.Invalid("unknown role")
	}

	if err := s.users.UpdateRole(id, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("failed to update role", err)
	}

	logrus.WithFields(logrus.Fields{"user_id": id, "role": role}).Info("User role updated")
	return nil
}
