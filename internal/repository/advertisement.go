// internal/repository/advertisement.go
package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type AdvertisementRepository interface {
	Create(ad *models.Advertisement) error
	GetByID(id uuid.UUID) (*models.Advertisement, error)
	ListByCreator(email string, params utils.PaginationParams) ([]models.Advertisement, int64, error)
	List(status models.ReviewStatus, params utils.PaginationParams) ([]models.Advertisement, int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
	SetReviewStatus(id uuid.UUID, status models.ReviewStatus, reason, feedback string) (bool, error)
}

type gormAdvertisementRepository struct {
	db *gorm.DB
}

func NewGormAdvertisementRepository(db *gorm.DB) AdvertisementRepository {
	return &gormAdvertisementRepository{db: db}
}

func (r *gormAdvertisementRepository) Create(ad *models.Advertisement) error {
	return translate(r.db.Create(ad).Error)
}

func (r *gormAdvertisementRepository) GetByID(id uuid.UUID) (*models.Advertisement, error) {
	var ad models.Advertisement
	if err := r.db.First(&ad, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &ad, nil
}

func (r *gormAdvertisementRepository) ListByCreator(email string, params utils.PaginationParams) ([]models.Advertisement, int64, error) {
	query := r.db.Model(&models.Advertisement{}).Where("ad_created_by = ?", email)
	return r.paginate(query, params)
}

func (r *gormAdvertisementRepository) List(status models.ReviewStatus, params utils.PaginationParams) ([]models.Advertisement, int64, error) {
	query := r.db.Model(&models.Advertisement{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	return r.paginate(query, params)
}

func (r *gormAdvertisementRepository) paginate(query *gorm.DB, params utils.PaginationParams) ([]models.Advertisement, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var ads []models.Advertisement
	if err := query.Find(&ads).Error; err != nil {
		return nil, 0, translate(err)
	}

	return ads, total, nil
}

func (r *gormAdvertisementRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.Advertisement{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormAdvertisementRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Advertisement{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormAdvertisementRepository) SetReviewStatus(id uuid.UUID, status models.ReviewStatus, reason, feedback string) (bool, error) {
	result := r.db.Model(&models.Advertisement{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":             status,
			"rejection_reason":   reason,
			"rejection_feedback": feedback,
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}
