// internal/repository/vendor.go
package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type VendorApplicationRepository interface {
	Create(app *models.VendorApplication) error
	GetByID(id uuid.UUID) (*models.VendorApplication, error)
	HasPending(email string) (bool, error)
	List(status models.ApplicationStatus, params utils.PaginationParams) ([]models.VendorApplication, int64, error)
	// Decide is a compare-and-set: the status moves off pending at most once.
	// Returns false when the application was already decided.
	Decide(id uuid.UUID, status models.ApplicationStatus, decidedAt time.Time) (bool, error)
}

type gormVendorApplicationRepository struct {
	db *gorm.DB
}

func NewGormVendorApplicationRepository(db *gorm.DB) VendorApplicationRepository {
	return &gormVendorApplicationRepository{db: db}
}

func (r *gormVendorApplicationRepository) Create(app *models.VendorApplication) error {
	return translate(r.db.Create(app).Error)
}

func (r *gormVendorApplicationRepository) GetByID(id uuid.UUID) (*models.VendorApplication, error) {
	var app models.VendorApplication
	if err := r.db.First(&app, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (r *gormVendorApplicationRepository) HasPending(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.VendorApplication{}).
		Where("applicant_email = ? AND vendor_status = ?", email, models.ApplicationStatusPending).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *gormVendorApplicationRepository) List(status models.ApplicationStatus, params utils.PaginationParams) ([]models.VendorApplication, int64, error) {
	query := r.db.Model(&models.VendorApplication{})
	if status != "" {
		query = query.Where("vendor_status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	allowedSortFields := []string{"created_at", "applicant_email", "vendor_status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var apps []models.VendorApplication
	if err := query.Find(&apps).Error; err != nil {
		return nil, 0, translate(err)
	}

	return apps, total, nil
}

func (r *gormVendorApplicationRepository) Decide(id uuid.UUID, status models.ApplicationStatus, decidedAt time.Time) (bool, error) {
	result := r.db.Model(&models.VendorApplication{}).
		Where("id = ? AND vendor_status = ?", id, models.ApplicationStatusPending).
		Updates(map[string]interface{}{
			"vendor_status": status,
			"decided_at":    decidedAt,
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}
