// internal/services/ad_service.go
package services

import (
	"errors"

	"github.com/google/uuid"

	"github.com/bazarcheck/bazarcheck-backend/internal/apperr"
	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type AdService struct {
	ads repository.AdvertisementRepository
}

func NewAdService(ads repository.AdvertisementRepository) *AdService {
	return &AdService{ads: ads}
}

type CreateAdInput struct {
	Title            string `json:"title" validate:"required,min=2,max=255"`
	ShortDescription string `json:"short_description" validate:"max=2000"`
	Image            string `json:"image" validate:"omitempty,url"`
}

func (s *AdService) Create(creatorEmail string, input CreateAdInput) (*models.Advertisement, error) {
	ad := &models.Advertisement{
		AdCreatedBy:      creatorEmail,
		Title:            input.Title,
		ShortDescription: input.ShortDescription,
		Image:            input.Image,
		Status:           models.ReviewStatusPending,
	}
	if err := s.ads.Create(ad); err != nil {
		return nil, apperr.Internal("failed to create advertisement", err)
	}
	return ad, nil
}

func (s *AdService) ListByCreator(email string, params utils.PaginationParams) ([]models.Advertisement, int64, error) {
	ads, total, err := s.ads.ListByCreator(email, params)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list advertisements", err)
	}
	return ads, total, nil
}

func (s *AdService) List(status models.ReviewStatus, params utils.PaginationParams) ([]models.Advertisement, int64, error) {
	ads, total, err := s.ads.List(status, params)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list advertisements", err)
	}
	return ads, total, nil
}

func (s *AdService) ListApproved(params utils.PaginationParams) ([]models.Advertisement, int64, error) {
	return s.List(models.ReviewStatusApproved, params)
}

func (s *AdService) Delete(id uuid.UUID, callerEmail string, callerRole models.Role) error {
	ad, err := s.ads.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("advertisement not found")
		}
		return apperr.Internal("failed to load advertisement", err)
	}
	if callerRole != models.RoleAdmin && ad.AdCreatedBy != callerEmail {
		return apperr.Forbidden("you do not own this advertisement")
	}

	if err := s.ads.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("advertisement not found")
		}
		return apperr.Internal("failed to delete advertisement", err)
	}
	return nil
}

func (s *AdService) Approve(id uuid.UUID) (*models.Advertisement, error) {
	found, err := s.ads.SetReviewStatus(id, models.ReviewStatusApproved, "", "")
	if err != nil {
		return nil, apperr.Internal("failed to approve advertisement", err)
	}
	if !found {
		return nil, apperr.NotFound("advertisement not found")
	}
	return s.ads.GetByID(id)
}

func (s *AdService) Reject(id uuid.UUID, input RejectInput) (*models.Advertisement, error) {
	found, err := s.ads.SetReviewStatus(id, models.ReviewStatusRejected, input.Reason, input.Feedback)
	if err != nil {
		return nil, apperr.Internal("failed to reject advertisement", err)
	}
	if !found {
		return nil, apperr.NotFound("advertisement not found")
	}
	return s.ads.GetByID(id)
}
