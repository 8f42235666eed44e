// internal/services/auth_service.go
package services

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bazarcheck/bazarcheck-backend/internal/apperr"
	"github.com/bazarcheck/bazarcheck-backend/internal/config"
	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type AuthService struct {
	users repository.UserRepository
	cfg   config.JWTConfig
}

func NewAuthService(users repository.UserRepository, cfg config.JWTConfig) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Photo    string `json:"photo" validate:"omitempty,url"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

// Register creates an account with the base role. The role is never taken
// from the request; promotion happens only through the vendor application
// flow or an admin role change.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	user := &models.User{
		Email: input.Email,
		Name:  input.Name,
		Photo: input.Photo,
		Role:  models.RoleUser,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("an account with this email already exists")
		}
		return nil, apperr.Internal("failed to create user", err)
	}

	logrus.WithField("email", user.Email).Info("User registered")
	return user, nil
}

type TokenInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

// IssueToken mints a signed token for the given email. A known account with a
// local credential must present it; an account provisioned through the
// external identity provider carries none and is trusted on email alone. An
// unknown email receives a token with the base role, matching how first-time
// visitors browse before their account row exists.
func (s *AuthService) IssueToken(input TokenInput) (string, error) {
	role := models.RoleUser

	user, err := s.users.GetByEmail(input.Email)
	switch {
	case err == nil:
		if user.HasPassword() {
			if checkErr := user.CheckPassword(input.Password); checkErr != nil {
				return "", apperr.Unauthorized("invalid credentials")
			}
		}
		role = user.Role
	case errors.Is(err, repository.ErrNotFound):
		// fall through with the base role
	default:
		return "", apperr.Internal("failed to look up user", err)
	}

	token, err := utils.GenerateJWT(input.Email, string(role), s.cfg.AccessTokenTTL)
	if err != nil {
		return "", apperr.Internal("failed to sign token", err)
	}
	return token, nil
}

type LastLoginInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// RecordLogin stamps last_signed_in and refreshes the profile fields the
// identity provider supplies on each sign-in.
func (s *AuthService) RecordLogin(input LastLoginInput) error {
	if err := s.users.TouchLastSignedIn(input.Email, time.Now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("failed to record sign-in", err)
	}

	if input.Name != "" || input.Photo != "" {
		if err := s.users.UpdateProfile(input.Email, input.Name, input.Photo); err != nil &&
			!errors.Is(err, repository.ErrNotFound) {
			return apperr.Internal("failed to refresh profile", err)
		}
	}
	return nil
}
