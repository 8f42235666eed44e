// internal/services/vendor_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bazarcheck/bazarcheck-backend/internal/apperr"
	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type VendorService struct {
	applications repository.VendorApplicationRepository
	users        repository.UserRepository
}

func NewVendorService(applications repository.VendorApplicationRepository, users repository.UserRepository) *VendorService {
	return &VendorService{applications: applications, users: users}
}

type ApplyInput struct {
	ApplicantEmail string `json:"applicant_email" validate:"required,email"`
	ApplicantName  string `json:"applicant_name" validate:"required,min=2,max=100"`
	ShopName       string `json:"shop_name" validate:"required,min=2,max=150"`
	MarketName     string `json:"market_name" validate:"max=150"`
	Phone          string `json:"phone" validate:"max=30"`
	About          string `json:"about" validate:"max=2000"`
}

// Apply files a vendor application. One pending application per applicant.
func (s *VendorService) Apply(input ApplyInput) (*models.VendorApplication, error) {
	pending, err := s.applications.HasPending(input.ApplicantEmail)
	if err != nil {
		return nil, apperr.Internal("failed to check applications", err)
	}
	if pending {
		return nil, apperr.Conflict("an application is already pending for this account")
	}

	app := &models.VendorApplication{
		ApplicantEmail: input.ApplicantEmail,
		ApplicantName:  input.ApplicantName,
		ShopName:       input.ShopName,
		MarketName:     input.MarketName,
		Phone:          input.Phone,
		About:          input.About,
		VendorStatus:   models.ApplicationStatusPending,
	}
	if err := s.applications.Create(app); err != nil {
		return nil, apperr.Internal("failed to create application", err)
	}

	logrus.WithField("email", app.ApplicantEmail).Info("Vendor application filed")
	return app, nil
}

func (s *VendorService) List(status models.ApplicationStatus, params utils.PaginationParams) ([]models.VendorApplication, int64, error) {
	apps, total, err := s.applications.List(status, params)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list applications", err)
	}
	return apps, total, nil
}

// Decide resolves a pending application. The transition fires at most once:
// the store updates only rows still pending, so a second decision reports a
// conflict instead of rewriting history. Approval promotes the applicant.
func (s *VendorService) Decide(id uuid.UUID, approve bool) (*models.VendorApplication, error) {
	status := models.ApplicationStatusRejected
	if approve {
		status = models.ApplicationStatusApproved
	}

	decided, err := s.applications.Decide(id, status, time.Now())
	if err != nil {
		return nil, apperr.Internal("failed to decide application", err)
	}
	if !decided {
		if _, getErr := s.applications.GetByID(id); getErr != nil {
			if errors.Is(getErr, repository.ErrNotFound) {
				return nil, apperr.NotFound("application not found")
			}
			return nil, apperr.Internal("failed to load application", getErr)
		}
		return nil, apperr.Conflict("application has already been decided")
	}

	app, err := s.applications.GetByID(id)
	if err != nil {
		return nil, apperr.Internal("failed to load application", err)
	}

	if approve {
		if err := s.users.UpdateRoleByEmail(app.ApplicantEmail, models.RoleVendor); err != nil &&
			!errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Internal("failed to promote applicant", err)
		}
		logrus.WithField("email", app.ApplicantEmail).Info("Applicant promoted to vendor")
	}

	return app, nil
}
